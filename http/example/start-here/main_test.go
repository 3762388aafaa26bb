package main

import (
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/xy-planning-network/cairn/outfitter"
)

func Test(t *testing.T) {
	p, err := os.FindProcess(os.Getpid())
	if err != nil {
		t.Fatal(err)
	}

	go main()

	// wait for the web server to come up
	addr := "http://" + outfitter.DefaultHost + outfitter.DefaultPort
	for i := 0; i < 20; i++ {
		if _, err := http.Get(addr); err == nil {
			break
		}

		time.Sleep(50 * time.Millisecond)
	}

	for _, tc := range []struct {
		name     string
		input    string
		expected int
	}{
		{"root", "/", http.StatusOK},
		{"not-found", "/not-found", http.StatusNotFound},
		{"broken-500", "/broken", http.StatusInternalServerError},
		{"check-422", "/check", http.StatusUnprocessableEntity},
		{"check-200", "/check?marker=cairn", http.StatusOK},
		{"away-follows-redirect", "/away", http.StatusOK},
	} {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := http.Get(addr + tc.input)
			if err != nil {
				t.Fatal(err)
			}

			if actual.StatusCode != tc.expected {
				t.Errorf("expected %d, got %d", tc.expected, actual.StatusCode)
			}
		})
	}

	if err := p.Signal(os.Interrupt); err != nil {
		t.Fatal(err)
	}
}
