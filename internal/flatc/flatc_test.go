package flatc

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wrenexec "github.com/simonhull/firebird-suite/wren/internal/exec"
)

// fakeFlatc re-runs the test binary in place of flatc
func fakeFlatc(name string, args ...string) *exec.Cmd {
	cs := []string{"-test.run=TestHelperProcess", "--", name}
	cs = append(cs, args...)
	cmd := exec.Command(os.Args[0], cs...)
	cmd.Env = []string{"GO_WANT_HELPER_PROCESS=1"}
	return cmd
}

// TestHelperProcess prints its arguments one per line, in brackets so empty
// arguments stay visible. A schema named broken.fbs fails like flatc does.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	args := os.Args
	for i, arg := range args {
		if arg == "--" {
			args = args[i+1:]
			break
		}
	}

	for _, a := range args[1:] {
		if strings.HasSuffix(a, "broken.fbs") {
			fmt.Fprintf(os.Stderr, "error: %s:1: syntax error\n", a)
			os.Exit(1)
		}
		fmt.Printf("[%s]\n", a)
	}
	os.Exit(0)
}

func TestArgs(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		expected []string
	}{
		{
			name: "cpp",
			opts: Options{Language: "cpp", OutputDir: "out", IncludeDir: "temp"},
			expected: []string{
				"--cpp", "-o", "out", "-I", "temp", "temp/A.fbs", "temp/B.fbs",
			},
		},
		{
			name: "csharp",
			opts: Options{Language: "csharp", OutputDir: "Network/bin", IncludeDir: "temp"},
			expected: []string{
				"--csharp", "--filename-suffix", "", "-o", "Network/bin", "-I", "temp", "temp/A.fbs", "temp/B.fbs",
			},
		},
		{
			name:     "no include dir",
			opts:     Options{Language: "cpp", OutputDir: "out"},
			expected: []string{"--cpp", "-o", "out", "temp/A.fbs", "temp/B.fbs"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args, err := Args(DefaultRegistry(), []string{"temp/A.fbs", "temp/B.fbs"}, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, args)
		})
	}
}

func TestArgs_Errors(t *testing.T) {
	_, err := Args(DefaultRegistry(), nil, Options{Language: "rust", OutputDir: "out"})
	assert.ErrorIs(t, err, ErrUnknownLanguage)
	assert.Contains(t, err.Error(), "cpp, csharp")

	_, err = Args(DefaultRegistry(), nil, Options{Language: "cpp"})
	assert.Error(t, err)
}

func TestLanguageFlagsAreCopies(t *testing.T) {
	flags := CSharp.Flags()
	flags[0] = "--java"
	assert.Equal(t, "--csharp", CSharp.Flags()[0])
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(CPP))
	assert.Error(t, r.Register(CPP))
	assert.Error(t, r.Register(nil))
	assert.Error(t, r.Register(language{}))

	lang, err := r.Lookup("cpp")
	require.NoError(t, err)
	assert.False(t, lang.NestsNamespaces())

	assert.Equal(t, []string{"cpp", "csharp"}, DefaultRegistry().List())
	assert.True(t, CSharp.NestsNamespaces())
}

func TestFlatc_Compile(t *testing.T) {
	var stdout bytes.Buffer
	executor := wrenexec.NewExecutor(&wrenexec.Options{Stdout: &stdout, Command: fakeFlatc})
	compiler := New("bin/flatc", executor)

	err := compiler.Compile(context.Background(), []string{"temp/Monster.fbs"}, Options{
		Language:   "csharp",
		OutputDir:  "out",
		IncludeDir: "temp",
	})
	require.NoError(t, err)

	assert.Equal(t,
		"[--csharp]\n[--filename-suffix]\n[]\n[-o]\n[out]\n[-I]\n[temp]\n[temp/Monster.fbs]\n",
		stdout.String())
	assert.Equal(t, "bin/flatc", compiler.Path())
}

func TestFlatc_CompileFailurePropagates(t *testing.T) {
	var stderr bytes.Buffer
	executor := wrenexec.NewExecutor(&wrenexec.Options{Stdout: &bytes.Buffer{}, Stderr: &stderr, Command: fakeFlatc})

	err := New("", executor).Compile(context.Background(), []string{"temp/broken.fbs"}, Options{
		Language:  "cpp",
		OutputDir: "out",
	})
	require.Error(t, err)
	assert.Equal(t, 1, wrenexec.ExitCode(err))
	assert.Contains(t, stderr.String(), "syntax error")
}

func TestFlatc_UnknownLanguageDoesNotRun(t *testing.T) {
	called := false
	executor := wrenexec.NewExecutor(&wrenexec.Options{Command: func(name string, args ...string) *exec.Cmd {
		called = true
		return fakeFlatc(name, args...)
	}})

	err := New("", executor).Compile(context.Background(), []string{"a.fbs"}, Options{Language: "go", OutputDir: "out"})
	assert.ErrorIs(t, err, ErrUnknownLanguage)
	assert.False(t, called)
}

func TestNew_Defaults(t *testing.T) {
	f := New("", nil)
	assert.Equal(t, DefaultPath, f.Path())
}
