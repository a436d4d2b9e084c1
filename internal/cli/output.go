// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"encoding/json"
	"fmt"
	"io"
)

// Field is one labelled value of a text result.
type Field struct {
	Label string
	Value any
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// Success writes data as an indented JSON object, or the fields as
// "label: value" lines in text mode.
func (f *OutputFormatter) Success(data any, fields ...Field) error {
	if f.Format == "json" {
		encoder := json.NewEncoder(f.Writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(data)
	}

	for _, field := range fields {
		if _, err := fmt.Fprintf(f.Writer, "%s: %v\n", field.Label, field.Value); err != nil {
			return err
		}
	}
	return nil
}
