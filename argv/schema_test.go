package argv

import (
	"strings"
	"testing"
)

func wantSchemaErr(t *testing.T, b *Builder, fragment string) {
	t.Helper()
	_, err := b.Build()
	if err == nil {
		t.Fatalf("Build succeeded, want schema error containing %q", fragment)
	}
	pe, ok := err.(*ParseError)
	if !ok || pe.Kind != ErrSchema {
		t.Fatalf("Build error = %v, want schema kind", err)
	}
	if !strings.Contains(pe.Message, fragment) {
		t.Errorf("message %q lacks %q", pe.Message, fragment)
	}
}

func TestBuildRejectsDuplicateDestination(t *testing.T) {
	b := New("app", "test app")
	b.Flag("force", "Force")
	b.Option("force", "Force output")
	wantSchemaErr(t, b, "duplicate destination")
}

func TestBuildRejectsDuplicateAliases(t *testing.T) {
	b := New("app", "test app")
	b.Flag("all", "All").Short('a')
	b.Option("archive", "Archive").Short('a')
	wantSchemaErr(t, b, "duplicate short alias")

	b = New("app", "test app")
	b.Flag("x", "X").Long("force")
	b.Flag("y", "Y").Long("force")
	wantSchemaErr(t, b, "duplicate long alias")
}

func TestBuildRejectsVariadicNotLast(t *testing.T) {
	b := New("app", "test app")
	b.Positional("files", "Inputs").Variadic()
	b.Positional("dst", "Destination")
	wantSchemaErr(t, b, "must be declared last")
}

func TestBuildRejectsDuplicateSubcommandNames(t *testing.T) {
	b := New("app", "test app")
	b.Command("sync", "Sync one")
	b.Command("fetch", "Fetch").Alias("sync")
	wantSchemaErr(t, b, "duplicate subcommand")
}

func TestBuildRejectsBadDefault(t *testing.T) {
	b := New("app", "test app")
	b.Option("port", "Port").Type(TypeInt).Default("eighty")
	wantSchemaErr(t, b, "default")

	b = New("app", "test app")
	b.Choice("mode", "Mode", "fast", "full").Default("slow")
	wantSchemaErr(t, b, "choices")
}

func TestBuildRejectsCallbackWithoutFunc(t *testing.T) {
	b := New("app", "test app")
	b.Option("level", "Level").Action(ActionCallback)
	wantSchemaErr(t, b, "callback")
}

func TestBuildRejectsNonASCIIShort(t *testing.T) {
	b := New("app", "test app")
	b.Flag("emphasis", "Emphasis").Short('é')
	wantSchemaErr(t, b, "ASCII")
}

func TestBuildRejectsPositionalWithAlias(t *testing.T) {
	b := New("app", "test app")
	b.Positional("src", "Source").Short('s')
	wantSchemaErr(t, b, "option aliases")
}

func TestBuildFreezesNestedTree(t *testing.T) {
	spec := New("app", "test app").
		Command("remote", "Manage remotes").
		Command("add", "Add").
		Positional("name", "Name").Command().
		Parent().
		Root().
		MustBuild()

	remote := spec.Root().findSub("remote")
	if remote == nil {
		t.Fatal("remote not frozen")
	}
	add := remote.findSub("add")
	if add == nil {
		t.Fatal("add not frozen")
	}
	if add.path != "app remote add" {
		t.Errorf("path = %q", add.path)
	}
	if len(add.positionals) != 1 || add.positionals[0].Name != "name" {
		t.Errorf("positionals = %+v", add.positionals)
	}
}

func TestBuildLongDefaultsToName(t *testing.T) {
	spec := New("app", "test app").
		Flag("force", "Force").Root().
		MustBuild()

	if spec.Root().longs["force"] == nil {
		t.Error("long alias not derived from the destination name")
	}
}
