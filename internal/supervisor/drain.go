package supervisor

import (
	"bufio"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"

	gerrors "github.com/AndreyAkinshin/gantry/internal/errors"
)

// Drain reads one stream to completion on its own goroutine, accumulating
// every line followed by "\n". Lines ending in "\r\n" are stored with "\n"
// and a final unterminated line still gets its "\n".
type Drain struct {
	done chan struct{}
	text string
	err  error
}

// StartDrain begins reading r. The caller must eventually call Wait.
func StartDrain(r io.Reader) *Drain {
	d := &Drain{done: make(chan struct{})}
	go func() {
		defer close(d.done)
		d.text, d.err = drain(r)
	}()
	return d
}

// Wait blocks until the stream reaches end of file and returns its text.
// A read error before end of file is a KindStreamRead error.
func (d *Drain) Wait() (string, error) {
	<-d.done
	return d.text, d.err
}

// DrainAll consumes all readers concurrently and returns their texts in
// argument order once every one of them has reached end of file.
func DrainAll(readers ...io.Reader) ([]string, error) {
	texts := make([]string, len(readers))
	var g errgroup.Group
	for i, r := range readers {
		g.Go(func() error {
			text, err := drain(r)
			texts[i] = text
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return texts, nil
}

func drain(r io.Reader) (string, error) {
	br := bufio.NewReader(r)
	var sb strings.Builder
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			line = strings.TrimSuffix(line, "\n")
			line = strings.TrimSuffix(line, "\r")
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
		if err == io.EOF {
			return sb.String(), nil
		}
		if err != nil {
			return "", gerrors.WrapKind(gerrors.KindStreamRead, err, "failed to read process output: "+err.Error())
		}
	}
}
