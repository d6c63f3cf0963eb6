// Copyright 2025 The WikiGeo Authors
// SPDX-License-Identifier: Apache-2.0

package htmlutils

import (
	"io"
	"net/http"
	"strings"
	"testing"
)

func TestAsReader_WithNonOKStatus(t *testing.T) {
	const msg = "status 404"

	resp := &http.Response{
		StatusCode: http.StatusNotFound,
		Body:       io.NopCloser(strings.NewReader("")),
	}

	r, err := AsReader(resp)
	if r != nil {
		t.Errorf("Expected nil reader")
	} else if err == nil || !strings.Contains(err.Error(), msg) {
		t.Errorf("Expected error containing '%s', got %v", msg, err)
	}
}

func TestAsReader_WithWrongMediaType(t *testing.T) {
	resp := &http.Response{
		StatusCode: http.StatusOK,
		Header:     make(http.Header),
		Body:       io.NopCloser(strings.NewReader("plain text")),
	}
	resp.Header.Set("Content-Type", "text/plain")

	r, err := AsReader(resp)
	if r != nil {
		t.Errorf("Expected nil reader")
	} else if err == nil || !strings.Contains(err.Error(), "text/plain") {
		t.Errorf("Expected error mentioning media type, got %v", err)
	}
}

func TestAsReader_HappyPathTranscoding(t *testing.T) {
	htmlData := "<html><body>Jyv\xe4skyl\xe4</body></html>"
	resp := &http.Response{
		StatusCode: http.StatusOK,
		Header:     make(http.Header),
		Body:       io.NopCloser(strings.NewReader(htmlData)),
	}
	// Include charset information to test that the reader is correctly created.
	resp.Header.Set("Content-Type", "text/html; charset=iso-8859-1")

	reader, err := AsReader(resp)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	doc, err := AsDocument(reader)
	if err != nil {
		t.Fatal(err)
	}

	if got := doc.Find("body").Text(); got != "Jyväskylä" {
		t.Errorf("Expected transcoded content, got %q", got)
	}
}

func TestAsDocument(t *testing.T) {
	doc, err := AsDocument(strings.NewReader(`<p><span id="x">hello</span></p>`))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if got := doc.Find("span#x").Text(); got != "hello" {
		t.Errorf("Expected 'hello', got %q", got)
	}
}

func TestHasHtmlContentType(t *testing.T) {
	tests := []struct {
		expected bool
		input    string
	}{
		{false, ""},
		{false, "text/plain"},
		{true, "text/html"},
		{true, "text/HTml"},
		{true, "text/html; charset=ISO-8859-1"},
	}

	for _, test := range tests {
		if got := hasHTMLContentType(test.input); got != test.expected {
			t.Errorf("`%s': expected %v but got %v", test.input, test.expected, got)
		}
	}
}
