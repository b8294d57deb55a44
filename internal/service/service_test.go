package service

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/osforge/osforge/internal/variable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Writes an executable shell script into dir.
func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return path
}

// Script answering introspection with api and otherwise running body.
func serviceScript(api, body string) string {
	return "if [ \"$1\" = \"-a\" ]; then\n" +
		"  echo '" + api + "'\n" +
		"  exit 0\n" +
		"fi\n" + body
}

func newPool(t *testing.T, vars ...variable.Variable) *variable.Pool {
	t.Helper()
	p := variable.NewPool(variable.WithEnviron([]string{"PATH=/usr/bin:/bin"}))
	for _, v := range vars {
		require.NoError(t, p.Register(context.Background(), v))
	}
	return p
}

func TestParseName(t *testing.T) {
	tests := []struct {
		input   string
		want    Name
		wantErr bool
	}{
		{input: "get-rootfs", want: GetRootfs},
		{input: "get-rootfs.sh", want: GetRootfs},
		{input: "buildsum", want: Buildsum},
		{input: "pkgdiff", want: Pkgdiff},
		{input: "test-echo.sh", want: TestEcho},
		{input: "buildsum.py", want: Buildsum},
		{input: "pkgdiff.py", want: Pkgdiff},
		{input: "buildsum.sh", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseName(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownService)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNamesRoundTrip(t *testing.T) {
	names := Names()
	require.Len(t, names, len(descriptors))

	for _, n := range names {
		text, err := n.MarshalText()
		require.NoError(t, err)

		var parsed Name
		require.NoError(t, parsed.UnmarshalText(text))
		assert.Equal(t, n, parsed)
		assert.NotEmpty(t, n.Executable())
	}

	_, err := Name(0).MarshalText()
	assert.ErrorIs(t, err, ErrUnknownService)
}

func TestExpand(t *testing.T) {
	tests := []struct {
		name     string
		template string
		args     map[string]string
		want     string
	}{
		{
			name:     "all placeholders",
			template: "$branch $storage -w",
			args:     map[string]string{"branch": "sisyphus", "storage": "/srv"},
			want:     "sisyphus /srv -w",
		},
		{
			name:     "missing key stays literal",
			template: "$stream $repo_root $commit -w",
			args:     map[string]string{"stream": "altcos/x86_64/sisyphus/base"},
			want:     "altcos/x86_64/sisyphus/base $repo_root $commit -w",
		},
		{
			name:     "extra keys ignored",
			template: "$a",
			args:     map[string]string{"a": "1", "b": "2"},
			want:     "1",
		},
		{
			name:     "value with dollar is not expanded again",
			template: "$a $b",
			args:     map[string]string{"a": "$b", "b": "x"},
			want:     "$b x",
		},
		{
			name:     "no placeholders",
			template: "--flag",
			want:     "--flag",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Expand(tt.template, tt.args))
		})
	}
}

func TestResolveArgs(t *testing.T) {
	pool := newPool(t, variable.Variable{Name: "BRANCH", Value: "p10"})
	s := &Service{Name: Buildsum, Args: map[string]string{"branch": "$BRANCH", "storage": "/srv"}}

	args, err := s.ResolveArgs(pool)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"branch": "p10", "storage": "/srv"}, args)
	assert.Equal(t, "$BRANCH", s.Args["branch"], "descriptor must not be mutated")

	s.Args["storage"] = "$STORAGE"
	_, err = s.ResolveArgs(pool)
	require.ErrorIs(t, err, variable.ErrUnresolvedVariable)
}

func TestAPI(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "buildsum", serviceScript("$branch $storage -w", "exit 0\n"))

	inv := NewInvoker(Config{ScriptsDir: dir, Environ: []string{"PATH=/usr/bin:/bin"}})
	api, err := inv.API(context.Background(), &Service{Name: Buildsum}, newPool(t))
	require.NoError(t, err)
	assert.Equal(t, "$branch $storage -w", api)
}

func TestAPIFailure(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "sign.sh", "echo 'no api here' >&2\nexit 2\n")

	inv := NewInvoker(Config{ScriptsDir: dir, Environ: []string{"PATH=/usr/bin:/bin"}})
	_, err := inv.API(context.Background(), &Service{Name: Sign}, newPool(t))
	require.ErrorIs(t, err, ErrServiceAPI)
	assert.ErrorIs(t, err, ErrService)
	assert.Contains(t, err.Error(), "no api here")
}

func TestRunMissingExecutable(t *testing.T) {
	inv := NewInvoker(Config{ScriptsDir: t.TempDir()})
	_, err := inv.Run(context.Background(), &Service{Name: Apt}, newPool(t))
	require.ErrorIs(t, err, ErrService)
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "test-echo.sh", serviceScript("$message --count $count",
		"echo \"out: $*\"\necho \"err: $OSFORGE_TEST\" >&2\nexit 0\n"))

	pool := newPool(t,
		variable.Variable{Name: "MSG", Value: "hello"},
		variable.Variable{Name: "OSFORGE_TEST", Value: "exported", Export: true},
	)

	var echo bytes.Buffer
	inv := NewInvoker(Config{ScriptsDir: dir, Environ: []string{"PATH=/usr/bin:/bin"}, Echo: &echo})

	s := &Service{Name: TestEcho, Args: map[string]string{"message": "$MSG", "count": "3"}}
	result, err := inv.Run(context.Background(), s, pool)
	require.NoError(t, err)

	assert.True(t, result.Success())
	assert.Same(t, s, result.Service)
	assert.Equal(t, "out: hello --count 3\nerr: exported\n", result.Content)
	assert.Empty(t, echo.String(), "output echoed without with_print")
}

func TestRunWithPrint(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "test-echo.sh", serviceScript("", "echo printed\n"))

	var echo bytes.Buffer
	inv := NewInvoker(Config{ScriptsDir: dir, Environ: []string{"PATH=/usr/bin:/bin"}, Echo: &echo})

	result, err := inv.Run(context.Background(), &Service{Name: TestEcho, WithPrint: true}, newPool(t))
	require.NoError(t, err)
	assert.Equal(t, "printed\n", result.Content)
	assert.Equal(t, "printed\n", echo.String())
}

func TestRunNonzeroExit(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "compress.sh", serviceScript("", "echo 'disk full'\nexit 7\n"))

	inv := NewInvoker(Config{ScriptsDir: dir, Environ: []string{"PATH=/usr/bin:/bin"}})
	result, err := inv.Run(context.Background(), &Service{Name: Compress}, newPool(t))
	require.NoError(t, err)
	assert.False(t, result.Success())
	assert.Equal(t, 7, result.ExitCode)
	assert.Equal(t, "disk full\n", result.Content)
}

func TestRunUnresolvedArgument(t *testing.T) {
	dir := t.TempDir()
	marker := filepath.Join(dir, "ran")
	writeScript(t, dir, "checkout.sh", serviceScript("$ref", "touch "+marker+"\n"))

	inv := NewInvoker(Config{ScriptsDir: dir, Environ: []string{"PATH=/usr/bin:/bin"}})
	_, err := inv.Run(context.Background(), &Service{Name: Checkout, Args: map[string]string{"ref": "$REF"}}, newPool(t))
	require.ErrorIs(t, err, variable.ErrUnresolvedVariable)
	assert.NoFileExists(t, marker)
}

func TestRunPrivilegedWithoutCredential(t *testing.T) {
	dir := t.TempDir()
	marker := filepath.Join(dir, "ran")
	writeScript(t, dir, "apt.sh", "touch "+marker+"\necho '$x'\n")

	inv := NewInvoker(Config{ScriptsDir: dir, Environ: []string{"PATH=/usr/bin:/bin"}})
	_, err := inv.Run(context.Background(), &Service{Name: Apt, AsRoot: true}, newPool(t))
	require.ErrorIs(t, err, ErrService)
	assert.NoFileExists(t, marker, "no process may be spawned without a credential")
}

func TestRunPrivileged(t *testing.T) {
	dir := t.TempDir()

	// Stand-in for sudo: checks the password read from stdin, drops the
	// "-S -E -p ''" options and runs the rest.
	sudo := writeScript(t, dir, "fake-sudo", `read pw
if [ "$pw" != "hunter2" ]; then
  echo "wrong password" >&2
  exit 1
fi
shift 4
exec "$@"
`)
	writeScript(t, dir, "apt.sh", serviceScript("$pkg", "echo \"installing $1\"\n"))

	inv := NewInvoker(Config{
		ScriptsDir: dir,
		Credential: "hunter2",
		Environ:    []string{"PATH=/usr/bin:/bin"},
		Sudo:       sudo,
	})

	result, err := inv.Run(context.Background(), &Service{Name: Apt, AsRoot: true, Args: map[string]string{"pkg": "vim"}}, newPool(t))
	require.NoError(t, err)
	assert.Equal(t, 0, result.ExitCode)
	assert.Equal(t, "installing vim\n", result.Content)
}

func TestShellQuote(t *testing.T) {
	assert.Equal(t, `'/opt/scripts/a.sh'`, shellQuote("/opt/scripts/a.sh"))
	assert.Equal(t, `'/tmp/it'\''s'`, shellQuote("/tmp/it's"))
}
