package internal

import (
	"strings"
	"testing"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
)

func TestParseFlags(t *testing.T) {
	for _, tc := range []struct {
		desc     string
		args     []string
		want     Configurations
		wantArgs string
	}{
		{
			desc:     "plain query",
			args:     []string{"query text"},
			want:     Configurations{},
			wantArgs: "query text",
		},
		{
			desc:     "long flags",
			args:     []string{"--quick", "--verbose", "--model", "X", "q"},
			want:     Configurations{Quick: true, Verbose: true, Model: "X"},
			wantArgs: "q",
		},
		{
			desc:     "short flags",
			args:     []string{"-q", "-v", "-r", "-m", "mistral", "what", "is", "go"},
			want:     Configurations{Quick: true, Verbose: true, PrintRaw: true, Model: "mistral"},
			wantArgs: "what is go",
		},
		{
			desc:     "interactive",
			args:     []string{"-i"},
			want:     Configurations{Interactive: true},
			wantArgs: "",
		},
		{
			desc:     "interactive long",
			args:     []string{"-interactive", "-raw"},
			want:     Configurations{Interactive: true, PrintRaw: true},
			wantArgs: "",
		},
		{
			desc:     "both bool twins",
			args:     []string{"-q", "-quick", "x"},
			want:     Configurations{Quick: true},
			wantArgs: "x",
		},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			got, args, err := parseFlags(defaultFlags, tc.args)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testboil.FailTestIfDiff(t, got, tc.want)
			testboil.FailTestIfDiff(t, strings.Join(args, " "), tc.wantArgs)
		})
	}
}

func TestParseFlags_Errors(t *testing.T) {
	t.Run("it should reject conflicting model twins", func(t *testing.T) {
		_, _, err := parseFlags(defaultFlags, []string{"-m", "a", "-model", "b", "q"})
		if err == nil {
			t.Fatal("expected error")
		}
		testboil.AssertStringContains(t, err.Error(), "mutually exclusive")
	})

	t.Run("it should reject unknown flags", func(t *testing.T) {
		_, _, err := parseFlags(defaultFlags, []string{"-nope"})
		if err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("it should report help", func(t *testing.T) {
		_, _, err := parseFlags(defaultFlags, []string{"-h"})
		if !IsHelp(err) {
			t.Fatalf("expected help error, got: %v", err)
		}
	})
}
