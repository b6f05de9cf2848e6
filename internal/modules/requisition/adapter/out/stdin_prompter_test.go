package out_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	reqout "factoryerp/internal/modules/requisition/adapter/out"
)

func TestLinePrompterReadsOneLine(t *testing.T) {
	t.Parallel()
	var w bytes.Buffer
	p := reqout.NewLinePrompter(strings.NewReader("needs sign-off\r\nnext\n"), &w)

	text, ok, err := p.Prompt(context.Background(), "Enter remarks for approve:")
	if err != nil || !ok || text != "needs sign-off" {
		t.Fatalf("unexpected prompt result %q ok=%v err=%v", text, ok, err)
	}
	if w.String() != "Enter remarks for approve: " {
		t.Fatalf("unexpected prompt output %q", w.String())
	}
}

func TestLinePrompterEOFIsCancel(t *testing.T) {
	t.Parallel()
	p := reqout.NewLinePrompter(strings.NewReader(""), &bytes.Buffer{})
	if _, ok, err := p.Prompt(context.Background(), "x"); ok || err != nil {
		t.Fatalf("expected dismissed prompt, ok=%v err=%v", ok, err)
	}

	p = reqout.NewLinePrompter(strings.NewReader("last words"), &bytes.Buffer{})
	text, ok, err := p.Prompt(context.Background(), "x")
	if !ok || err != nil || text != "last words" {
		t.Fatalf("unterminated line should still count, got %q ok=%v err=%v", text, ok, err)
	}
}

func TestLinePrompterEmptyLineIsAnswer(t *testing.T) {
	t.Parallel()
	p := reqout.NewLinePrompter(strings.NewReader("\n"), &bytes.Buffer{})
	text, ok, err := p.Prompt(context.Background(), "x")
	if !ok || err != nil || text != "" {
		t.Fatalf("empty answer should be accepted, got %q ok=%v err=%v", text, ok, err)
	}
}
