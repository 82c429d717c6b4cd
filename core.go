package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jcorbin/goforth/internal/flushio"
	"github.com/jcorbin/goforth/internal/runeio"
)

// ioCore holds the machine's output sink and trace logging.
type ioCore struct {
	logging
	out flushio.WriteFlusher
}

func (ioc *ioCore) flush() error {
	if ioc.out == nil {
		return nil
	}
	return ioc.out.Flush()
}

func (ioc *ioCore) writeString(s string) error {
	_, err := io.WriteString(ioc.out, s)
	return err
}

func (ioc *ioCore) writef(format string, args ...interface{}) error {
	_, err := fmt.Fprintf(ioc.out, format, args...)
	return err
}

func (ioc *ioCore) writeRune(r rune) error {
	_, err := runeio.WriteANSIRune(ioc.out, r)
	return err
}

func (ioc *ioCore) writeWords(words ...string) error {
	_, err := runeio.WriteWords(ioc.out, words...)
	return err
}

type logging struct {
	logfn func(mess string, args ...interface{})

	markWidth int
}

func (log *logging) withLogPrefix(prefix string) func() {
	logfn := log.logfn
	log.logfn = func(mess string, args ...interface{}) {
		logfn(prefix+mess, args...)
	}
	return func() {
		log.logfn = logfn
	}
}

func (log *logging) logf(mark, mess string, args ...interface{}) {
	if log.logfn == nil {
		return
	}
	if n := log.markWidth - len(mark); n > 0 {
		for _, r := range mark {
			mark = strings.Repeat(string(r), n) + mark
			break
		}
	} else if n < 0 {
		log.markWidth = len(mark)
	}
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	log.logfn("%v %v", mark, mess)
}
