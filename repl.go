package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/ztrue/tracerr"

	"github.com/pontaoski/huck/eval"
	"github.com/pontaoski/huck/frontend"
	"github.com/pontaoski/huck/typecheck"
)

const historyFile = ".huck_history"

// session keeps the bindings of top-level lets between REPL lines. A line
// that fails at any stage binds nothing.
type session struct {
	checker   *typecheck.Checker
	evaluator *eval.Evaluator
}

func newSession() *session {
	return &session{
		checker:   typecheck.NewChecker(),
		evaluator: eval.NewEvaluator(),
	}
}

func (s *session) eval(line string) (eval.Value, error) {
	snap := s.checker.Scopes().Snapshot()

	checked, err := frontend.CheckWith(s.checker, strings.NewReader(line), "<repl>")
	if err != nil {
		return nil, err
	}
	val, err := s.evaluator.Evaluate(checked)
	if err != nil {
		s.checker.Scopes().Restore(snap)
		return nil, err
	}
	return val, nil
}

func repl(out io.Writer) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := historyFile
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
	}
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	s := newSession()
	for {
		line, err := ln.Prompt("huck> ")
		if err == liner.ErrPromptAborted || err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		ln.AppendHistory(line)

		val, err := s.eval(line)
		if err != nil {
			fmt.Fprintln(out, tracerr.Unwrap(err))
			continue
		}
		fmt.Fprintf(out, "%s : %s\n", val, val.Type())
	}
}
