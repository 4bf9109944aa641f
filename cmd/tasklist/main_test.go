package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/storage"
	"gopkg.in/yaml.v3"
)

func seedFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.json")
	kv, err := storage.OpenFile(path)
	if err != nil {
		t.Fatalf("open file store: %v", err)
	}
	store := storage.NewStore(kv, nil)
	tasks := []model.Task{
		{ID: 1, Text: "Buy milk"},
		{ID: 2, Text: "Walk dog", Done: true},
	}
	if err := store.Save(context.Background(), tasks); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := kv.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	return path
}

func runList(t *testing.T, args ...string) string {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd(&out, &errOut)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		t.Fatalf("execute %v: %v (stderr %q)", args, err, errOut.String())
	}
	return out.String()
}

func TestListTextUsesStoredTasks(t *testing.T) {
	path := seedFile(t)
	out := runList(t, "--backend", "file", "--file-path", path, "list")
	if !strings.Contains(out, "[ ] Buy milk (1)") || !strings.Contains(out, "[x] Walk dog (2)") {
		t.Fatalf("unexpected text output: %q", out)
	}
	if !strings.Contains(out, "1 item left | showing All") {
		t.Fatalf("expected items-left summary, got %q", out)
	}
}

func TestListJSONHonorsFilter(t *testing.T) {
	path := seedFile(t)
	out := runList(t, "--backend", "file", "--file-path", path, "list", "--filter", "completed", "--format", "json")
	var tasks []model.Task
	if err := json.Unmarshal([]byte(out), &tasks); err != nil {
		t.Fatalf("decode json: %v (%q)", err, out)
	}
	if len(tasks) != 1 || tasks[0].Text != "Walk dog" {
		t.Fatalf("unexpected filtered tasks: %+v", tasks)
	}
}

func TestListYAML(t *testing.T) {
	path := seedFile(t)
	out := runList(t, "--backend", "file", "--file-path", path, "list", "--format", "yaml", "--filter", "active")
	var tasks []model.Task
	if err := yaml.Unmarshal([]byte(out), &tasks); err != nil {
		t.Fatalf("decode yaml: %v (%q)", err, out)
	}
	if len(tasks) != 1 || tasks[0].ID != 1 {
		t.Fatalf("unexpected yaml tasks: %+v", tasks)
	}
}

func TestListRejectsUnknownFilterAndFormat(t *testing.T) {
	path := seedFile(t)
	for _, args := range [][]string{
		{"--backend", "file", "--file-path", path, "list", "--filter", "later"},
		{"--backend", "file", "--file-path", path, "list", "--format", "xml"},
	} {
		var out, errOut bytes.Buffer
		root := newRootCmd(&out, &errOut)
		root.SetArgs(args)
		if err := root.Execute(); err == nil {
			t.Fatalf("expected error for %v", args)
		}
	}
}
