package argv

import (
	"bytes"
	"strings"
	"testing"
)

func completionSpec(t *testing.T) *Spec {
	t.Helper()
	return New("mytool", "test tool").
		Flag("force", "Overwrite").Short('f').Root().
		Flag("secret", "Hidden switch").Hidden().Root().
		Command("sync", "Synchronise").Alias("s").
		Choice("mode", "Mode", "fast", "full").Command().
		Root().
		MustBuild()
}

func TestCompletionBash(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCompletion(&buf, completionSpec(t), ShellBash); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"complete -F _mytool_complete mytool",
		"--force",
		"sync",
		`"mytool s"`, // alias routes to the same node
		"--mode",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("bash script lacks %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "secret") {
		t.Errorf("hidden definition leaked:\n%s", out)
	}
}

func TestCompletionZsh(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCompletion(&buf, completionSpec(t), ShellZsh); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"#compdef mytool", "compadd", "--force", "sync"} {
		if !strings.Contains(out, want) {
			t.Errorf("zsh script lacks %q:\n%s", want, out)
		}
	}
}

func TestCompletionFish(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCompletion(&buf, completionSpec(t), ShellFish); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"complete -c mytool",
		"-l force",
		"-s f",
		`-a "sync"`,
		`"fast full"`, // choices offered as value candidates
	} {
		if !strings.Contains(out, want) {
			t.Errorf("fish script lacks %q:\n%s", want, out)
		}
	}
}

func TestCompletionUnknownShell(t *testing.T) {
	if err := WriteCompletion(&bytes.Buffer{}, completionSpec(t), "powershell"); err == nil {
		t.Error("unsupported shell accepted")
	}
}
