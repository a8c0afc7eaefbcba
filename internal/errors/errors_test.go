package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		severity Severity
		want     string
	}{
		{SeverityDebug, "debug"},
		{SeverityInfo, "info"},
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
		{SeverityCritical, "critical"},
		{Severity(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.severity.String(); got != tt.want {
				t.Errorf("Severity.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConfigurationError(t *testing.T) {
	err := NewConfigurationError("unknown cell renderer", ErrRendererNotFound).
		WithColumn("price").
		WithName("sparkline")

	want := "configuration error [column=price, name=sparkline]: unknown cell renderer: cell renderer not found"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if err.Severity() != SeverityWarning {
		t.Errorf("Severity() = %v, want warning", err.Severity())
	}
	if !errors.Is(err, ErrRendererNotFound) {
		t.Error("errors.Is should find the sentinel cause")
	}
	if errors.Is(err, ErrEditorNotFound) {
		t.Error("errors.Is matched an unrelated sentinel")
	}
	if !IsConfiguration(fmt.Errorf("populate: %w", err)) {
		t.Error("IsConfiguration should see through wrapping")
	}
}

func TestConfigurationError_NoContext(t *testing.T) {
	err := NewConfigurationError("editor has no GUI", nil)
	if got := err.Error(); got != "configuration error: editor has no GUI" {
		t.Errorf("Error() = %q", got)
	}
}

func TestCellError(t *testing.T) {
	err := NewCellError("write back failed", ErrInvalidRowData).
		WithRow("r7").
		WithColumn("qty").
		WithSeverity(SeverityCritical)

	want := "cell error [row=r7, column=qty]: write back failed: invalid row data"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if GetSeverity(err) != SeverityCritical {
		t.Errorf("GetSeverity() = %v", GetSeverity(err))
	}
	if IsUserFacing(err) {
		t.Error("cell errors are internal")
	}
	if IsConfiguration(err) {
		t.Error("a cell error is not a configuration error")
	}
	var target *CellError
	if !As(Wrap(err, "commit"), &target) || target.RowID != "r7" {
		t.Errorf("As() did not recover the CellError")
	}
}

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("template", "cells/price.html").WithCause(ErrTemplateUnavailable)
	if got := err.Error(); got != "template 'cells/price.html' not found: template unavailable" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, &NotFoundError{}) {
		t.Error("Is should match the NotFoundError type")
	}
	if !errors.Is(err, ErrTemplateUnavailable) {
		t.Error("Is should match the cause")
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("must be positive").WithField("grid.flash_delay").WithValue(-1)
	want := "validation error [field=grid.flash_delay, value=-1]: must be positive"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Error("validation errors should match ErrInvalidInput")
	}
	if !IsUserFacing(err) {
		t.Error("validation errors are user facing")
	}
}

func TestClassificationOfPlainErrors(t *testing.T) {
	plain := New("boom")
	if IsUserFacing(plain) || IsUserFacing(nil) {
		t.Error("plain errors are not user facing")
	}
	if GetSeverity(plain) != SeverityError {
		t.Errorf("GetSeverity(plain) = %v", GetSeverity(plain))
	}
	if GetSeverity(nil) != SeverityDebug {
		t.Errorf("GetSeverity(nil) = %v", GetSeverity(nil))
	}
	if IsConfiguration(nil) {
		t.Error("IsConfiguration(nil) = true")
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "x") != nil || Wrapf(nil, "x %d", 1) != nil {
		t.Error("wrapping nil should return nil")
	}
	err := Wrapf(ErrTimeout, "fetch %s", "a.html")
	if err.Error() != "fetch a.html: operation timed out" {
		t.Errorf("Wrapf() = %q", err.Error())
	}
	if !Is(err, ErrTimeout) {
		t.Error("Wrapf should preserve the chain")
	}
}
