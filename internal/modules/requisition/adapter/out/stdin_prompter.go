package out

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	reqout "factoryerp/internal/modules/requisition/port/out"
)

// LinePrompter asks on w and reads one line from r. End of input before any
// text counts as a dismissed prompt.
type LinePrompter struct {
	r *bufio.Reader
	w io.Writer
}

func NewLinePrompter(r io.Reader, w io.Writer) reqout.RemarksPrompter {
	return &LinePrompter{r: bufio.NewReader(r), w: w}
}

func (p *LinePrompter) Prompt(ctx context.Context, label string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	if _, err := fmt.Fprint(p.w, label+" "); err != nil {
		return "", false, err
	}
	line, err := p.r.ReadString('\n')
	if errors.Is(err, io.EOF) {
		if line == "" {
			return "", false, nil
		}
	} else if err != nil {
		return "", false, err
	}
	return strings.TrimRight(line, "\r\n"), true, nil
}
