package responses

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
)

// ErrResponseCommitted is returned by the gin sink when the response has
// already been written.
var ErrResponseCommitted = errors.New("response already committed")

// GinStatusKey is the gin context key under which the gin sink stores the
// Status of the envelope it wrote.
const GinStatusKey = "responses.status"

// Sink finalizes a response with a status code and a JSON body
type Sink interface {
	WriteJSON(code int, body any) error
}

// SinkFunc adapts a function to the Sink interface
type SinkFunc func(code int, body any) error

// WriteJSON calls f
func (f SinkFunc) WriteJSON(code int, body any) error {
	return f(code, body)
}

type ginSink struct {
	c *gin.Context
}

// Gin wraps a gin context
func Gin(c *gin.Context) Sink {
	return ginSink{c: c}
}

func (s ginSink) WriteJSON(code int, body any) error {
	if s.c.Writer.Written() {
		return ErrResponseCommitted
	}

	s.c.Status(code)
	if err := (render.JSON{Data: body}).Render(s.c.Writer); err != nil {
		_ = s.c.Error(err)
		return err
	}
	if env, ok := body.(Envelope); ok {
		s.c.Set(GinStatusKey, env.Status)
	}
	return nil
}

type httpSink struct {
	w http.ResponseWriter
}

// HTTP wraps a plain net/http response writer
func HTTP(w http.ResponseWriter) Sink {
	return httpSink{w: w}
}

func (s httpSink) WriteJSON(code int, body any) error {
	r := render.JSON{Data: body}
	r.WriteContentType(s.w)
	s.w.WriteHeader(code)
	return r.Render(s.w)
}

// WriterSink writes each body as one JSON line to an io.Writer and keeps
// the last code it was given.
type WriterSink struct {
	w    io.Writer
	code int
}

// Writer wraps an io.Writer
func Writer(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// WriteJSON encodes body as a single line and records code
func (s *WriterSink) WriteJSON(code int, body any) error {
	s.code = code
	return json.NewEncoder(s.w).Encode(body)
}

// Code returns the code of the last write, 0 before any
func (s *WriterSink) Code() int { return s.code }

// Recorder keeps the last code and body in memory
type Recorder struct {
	Code  int
	Body  any
	Calls int
}

// WriteJSON stores code and body without encoding
func (r *Recorder) WriteJSON(code int, body any) error {
	r.Code = code
	r.Body = body
	r.Calls++
	return nil
}

// Envelope returns the recorded body if it is an Envelope
func (r *Recorder) Envelope() (Envelope, bool) {
	env, ok := r.Body.(Envelope)
	return env, ok
}
