package cli

import (
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

func TestShell(t *testing.T) {
	newTestCLI(t)
	script := strings.Join([]string{
		`add --id 1 --name "Gaming Mouse" --quantity 2 --price 5`,
		`add --id 2 --name Pad --quantity 9`,
		`add --id 3 --name Cable`,
		`find 'gaming mouse'`,
		`get nope`,
		`bogus`,
		`remove 2`,
		`y`,
		``,
		`quit`,
		`add --id 4 --name Never`,
	}, "\n") + "\n"

	out, err := execute(script, "shell")
	if err != nil {
		t.Fatalf("shell failed: %v", err)
	}

	if got := strings.Count(out, "inventory> "); got != 9 {
		t.Fatalf("expected 9 prompts, got %d:\n%s", got, out)
	}
	for _, want := range []string{"Gaming Mouse", "product not found: id=nope", "unknown command", "removed 2"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}

	if inventory.Len() != 2 || inventory.Exists("2") || inventory.Exists("4") {
		t.Fatalf("unexpected inventory after shell: %d products", inventory.Len())
	}
	// flags from one line must not leak into the next
	p, err := inventory.Get("3")
	if err != nil || p.Quantity() != 0 {
		t.Fatalf("expected quantity 0 for product 3, got %d (%v)", p.Quantity(), err)
	}
}

func TestShell_RejectsStartupFlags(t *testing.T) {
	fs := newTestCLI(t)
	script := strings.Join([]string{
		`add --id 1 --name Mouse`,
		`list --data-file /other/inventory.json`,
		`--log-level debug list`,
		`add --id 2 --name Pad --autosave=false`,
		`list`,
	}, "\n") + "\n"

	out, err := execute(script, "shell")
	if err != nil {
		t.Fatalf("shell failed: %v", err)
	}
	for _, flag := range []string{"--data-file", "--log-level", "--autosave"} {
		if !strings.Contains(out, flag+" only applies when the shell starts") {
			t.Fatalf("expected %s to be rejected:\n%s", flag, out)
		}
	}
	if inventory.Exists("2") {
		t.Fatal("rejected line must not run")
	}
	if ok, _ := afero.Exists(fs, "/other/inventory.json"); ok {
		t.Fatal("rejected line must not touch another data file")
	}
	if dataFile != testDataFile {
		t.Fatalf("data file changed to %s", dataFile)
	}
}

func TestShell_EOFWithoutNewline(t *testing.T) {
	newTestCLI(t)
	if _, err := execute("add --id 1 --name Last", "shell"); err != nil {
		t.Fatalf("shell failed: %v", err)
	}
	if !inventory.Exists("1") {
		t.Fatal("expected final unterminated line to run")
	}
}

func TestSplitArgs(t *testing.T) {
	cases := []struct {
		line    string
		want    []string
		wantErr bool
	}{
		{"list", []string{"list"}, false},
		{"  add  --name\tX ", []string{"add", "--name", "X"}, false},
		{`add --name "Gaming Mouse"`, []string{"add", "--name", "Gaming Mouse"}, false},
		{`find 'it''s'`, []string{"find", "its"}, false},
		{`add --name="A B"`, []string{"add", "--name=A B"}, false},
		{`find "open`, nil, true},
	}
	for _, tc := range cases {
		got, err := splitArgs(tc.line)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("%q: expected error", tc.line)
			}
			continue
		}
		if err != nil || !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("%q: got %q (%v), want %q", tc.line, got, err, tc.want)
		}
	}
}
