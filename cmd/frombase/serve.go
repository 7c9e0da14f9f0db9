package main

import (
	"context"
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/horasal/frombase"
	"github.com/horasal/frombase/internal/plugin"
)

func (c maincmd) doServe(ctx context.Context, encoding string, workers int, _ []string) error {
	codec, err := plugin.NewCodec(encoding)
	if err != nil {
		return err
	}
	srv, err := plugin.NewServer(codec, workers, c.log, frombase.NewFromBaseCommand())
	if err != nil {
		return err
	}
	defer srv.Close()

	return errors.Wrap(srv.Serve(ctx, c.stdin, c.stdout), "serving plugin")
}

func (c maincmd) doSignature(ctx context.Context, _ []string) error {
	sig := frombase.NewFromBaseCommand().Signature()
	data, err := json.MarshalIndent([]frombase.Signature{sig}, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding signature")
	}
	_, err = fmt.Fprintln(c.stdout, string(data))
	return err
}

func (c maincmd) doTables(ctx context.Context, _ []string) error {
	for _, name := range frombase.TableNames() {
		chars, _ := frombase.LookupTable(name)
		if _, err := fmt.Fprintf(c.stdout, "%-12s %3d  %s\n", name, utf8.RuneCountInString(chars), chars); err != nil {
			return err
		}
	}
	return nil
}
