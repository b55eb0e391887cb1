package obs

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestRequestID(t *testing.T) {
	if got := RequestID(context.Background()); got != "-" {
		t.Fatalf("RequestID(empty) = %q, want -", got)
	}

	id := NewRequestID()
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("NewRequestID() = %q is not a uuid: %v", id, err)
	}

	ctx := WithRequestID(context.Background(), id)
	if got := RequestID(ctx); got != id {
		t.Fatalf("RequestID = %q, want %q", got, id)
	}
}

func TestTimeLogsOperationAndError(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(prev)

	ctx := WithRequestID(context.Background(), "abc")

	func() {
		var err error
		defer Time(ctx, "op.ok")(&err)
	}()

	func() {
		err := errors.New("boom")
		defer Time(ctx, "op.fail")(&err)
	}()

	out := buf.String()
	if !strings.Contains(out, "req_id=abc op=op.ok dur=") {
		t.Fatalf("missing success line in %q", out)
	}
	if !strings.Contains(out, "op=op.fail") || !strings.Contains(out, "err=boom") {
		t.Fatalf("missing failure line in %q", out)
	}
}
