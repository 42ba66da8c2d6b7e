package env

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	in := `# comment
RIGIDSIM_STEP=0.005
export RIGIDSIM_LOG = "logs/x.txt"

=novalue
noequals
RIGIDSIM_TEXTURES='../tex'
`
	got, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := [][2]string{
		{"RIGIDSIM_STEP", "0.005"},
		{"RIGIDSIM_LOG", "logs/x.txt"},
		{"RIGIDSIM_TEXTURES", "../tex"},
	}
	if len(got) != len(want) {
		t.Fatalf("Parse = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pair %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLoad_ShellWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("ENV_TEST_A=file\nENV_TEST_B=file\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ENV_TEST_A", "shell")
	t.Setenv("ENV_TEST_B", "")
	os.Unsetenv("ENV_TEST_B")

	if err := Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := os.Getenv("ENV_TEST_A"); got != "shell" {
		t.Errorf("ENV_TEST_A = %q, want shell", got)
	}
	if got := os.Getenv("ENV_TEST_B"); got != "file" {
		t.Errorf("ENV_TEST_B = %q, want file", got)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if err := Load(filepath.Join(t.TempDir(), "nope")); err != nil {
		t.Errorf("Load(missing) = %v, want nil", err)
	}
}

func TestTypedLookups(t *testing.T) {
	t.Setenv("ENV_TEST_F", " 9.5 ")
	t.Setenv("ENV_TEST_BAD", "x")
	t.Setenv("ENV_TEST_ON", "on")

	if v, ok, err := Float("ENV_TEST_F"); err != nil || !ok || v != 9.5 {
		t.Errorf("Float = %v %v %v", v, ok, err)
	}
	if _, _, err := Float("ENV_TEST_BAD"); err == nil {
		t.Error("Float(bad) should fail")
	}
	if _, ok, err := Float("ENV_TEST_UNSET_X"); ok || err != nil {
		t.Error("Float(unset) should report not set")
	}
	if v, ok, err := Bool("ENV_TEST_ON"); err != nil || !ok || !v {
		t.Errorf("Bool = %v %v %v", v, ok, err)
	}
	if _, _, err := Bool("ENV_TEST_BAD"); err == nil {
		t.Error("Bool(bad) should fail")
	}
	if s, ok := String("ENV_TEST_F"); !ok || s != "9.5" {
		t.Errorf("String = %q %v", s, ok)
	}
}
