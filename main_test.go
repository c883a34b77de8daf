package main

import (
	"strings"
	"testing"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
)

type goldenFileTestCase struct {
	expect          string
	givenArgs       []string
	givenEnvs       map[string]string
	wantOutExactly  string
	wantOutContains string
	wantEmptyStdout bool
	wantStatusCode  int
}

func Test_goldenFile(t *testing.T) {
	tcs := []goldenFileTestCase{
		{
			expect:         "no query",
			givenArgs:      []string{},
			wantStatusCode: 1,
		},
		{
			expect:         "only flags",
			givenArgs:      []string{"-q", "-r"},
			wantStatusCode: 1,
		},
		{
			expect:          "help",
			givenArgs:       []string{"-h"},
			wantOutContains: "Usage: scout [flags] <query>",
			wantStatusCode:  0,
		},
		{
			expect:          "version",
			givenArgs:       []string{"-version"},
			wantOutContains: "version: ",
			wantStatusCode:  0,
		},
		{
			expect:         "unknown flag",
			givenArgs:      []string{"-nope", "q"},
			wantStatusCode: 1,
		},
		{
			expect:         "conflicting model flags",
			givenArgs:      []string{"-m", "a", "-model", "b", "q"},
			wantStatusCode: 1,
		},
		{
			expect:         "invalid config",
			givenArgs:      []string{"q"},
			givenEnvs:      map[string]string{"MAX_SEARCH_RESULTS": "0"},
			wantStatusCode: 1,
		},
		{
			expect:          "unreachable backend",
			givenArgs:       []string{"-r", "what is go"},
			givenEnvs:       map[string]string{"OLLAMA_HOST": "http://127.0.0.1:1"},
			wantEmptyStdout: true,
			wantStatusCode:  1,
		},
	}

	for _, tc := range tcs {
		t.Run(tc.expect, func(t *testing.T) {
			t.Setenv("SCOUT_CONFIG_HOME", t.TempDir())
			t.Setenv("OLLAMA_MODEL", "")
			t.Setenv("OLLAMA_HOST", "")
			t.Setenv("MAX_SEARCH_RESULTS", "")
			t.Setenv("NO_COLOR", "true")
			for k, v := range tc.givenEnvs {
				t.Setenv(k, v)
			}
			var gotStatusCode int
			gotStdout := testboil.CaptureStdout(t, func(t *testing.T) {
				gotStatusCode = run(tc.givenArgs)
			})

			testboil.FailTestIfDiff(t, gotStatusCode, tc.wantStatusCode)
			if tc.wantOutContains != "" {
				testboil.AssertStringContains(t, gotStdout, tc.wantOutContains)
			}
			if tc.wantOutExactly != "" {
				testboil.FailTestIfDiff(t, gotStdout, tc.wantOutExactly)
			}
			if tc.wantEmptyStdout {
				testboil.FailTestIfDiff(t, strings.TrimSpace(gotStdout), "")
			}
		})
	}
}
