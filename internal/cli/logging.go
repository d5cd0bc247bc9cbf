package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/mitchellh/colorstring"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

func init() {
	zerolog.ErrorMarshalFunc = func(err error) interface{} {
		return eris.ToString(err, false)
	}
}

// newLogger returns a diagnostic logger writing one line per event to w.
func newLogger(w io.Writer, level zerolog.Level, color bool) zerolog.Logger {
	return zerolog.New(&consoleWriter{out: w, colorize: colorstring.Colorize{
		Colors:  colorstring.DefaultColors,
		Disable: !color,
		Reset:   true,
	}}).Level(level).With().Timestamp().Logger()
}

// consoleWriter renders zerolog JSON events as one colored line each.
// Fields other than the level, message, error and time are appended as
// key=value pairs in name order.
type consoleWriter struct {
	out      io.Writer
	colorize colorstring.Colorize
	buffer   strings.Builder
	lock     sync.Mutex
}

var levelColors = map[string]string{
	"fatal": "[red]",
	"error": "[red]",
	"warn":  "[yellow]",
	"debug": "[blue]",
	"trace": "[blue]",
}

func (w *consoleWriter) Write(p []byte) (int, error) {
	w.lock.Lock()
	defer w.lock.Unlock()

	var evt map[string]interface{}
	d := json.NewDecoder(bytes.NewReader(p))
	d.UseNumber()
	if err := d.Decode(&evt); err != nil {
		return 0, eris.Wrapf(err, "cannot decode event: %s", p)
	}

	level, _ := evt[zerolog.LevelFieldName].(string)
	color, ok := levelColors[level]
	if !ok {
		color = "[green]"
	}

	w.buffer.Reset()
	w.buffer.WriteString(color)
	w.buffer.WriteString(level)
	w.buffer.WriteString(": ")
	if msg, ok := evt[zerolog.MessageFieldName].(string); ok {
		w.buffer.WriteString(msg)
	}

	keys := make([]string, 0, len(evt))
	for key := range evt {
		switch key {
		case zerolog.LevelFieldName, zerolog.MessageFieldName, zerolog.ErrorFieldName, zerolog.TimestampFieldName:
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		w.buffer.WriteString(fmt.Sprintf(" %s=%v", key, evt[key]))
	}

	if errorDetails, ok := evt[zerolog.ErrorFieldName]; ok {
		w.buffer.WriteString("\n")
		w.buffer.WriteString(fmt.Sprint(errorDetails))
	}

	w.buffer.WriteString("[reset]\n")
	if _, err := io.WriteString(w.out, w.colorize.Color(w.buffer.String())); err != nil {
		return 0, err
	}
	return len(p), nil
}
