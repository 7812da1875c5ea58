//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"path/filepath"
)

// eventsFixture holds four events in three categories. Image references
// are empty or local so no test touches the network.
const eventsFixture = `{
  "events": [
    {"id": "tyrannosaurus-rex", "year": -66000000, "title": "Tyrannosaurus Rex", "category": "Dinosaurs", "location": "North America", "imageURL": "trex.jpg"},
    {"id": "dodo", "year": 1681, "title": "Dodo", "category": "Birds", "location": "Mauritius", "imageURL": "dodo.jpg", "description": "A flightless bird of Mauritius."},
    {"id": "moa", "year": 1445, "title": "Moa", "category": "Birds", "location": "New Zealand"},
    {"id": "thylacine", "year": 1936, "title": "Thylacine", "category": "Mammals", "location": "Tasmania"}
  ]
}`

// CreateTestWorkspace creates a temporary directory that becomes $HOME and
// the working directory of the application
func (d *Driver) CreateTestWorkspace() (string, error) {
	tmpDir, err := os.MkdirTemp("", "timeline-test-*")
	if err != nil {
		return "", err
	}
	d.workspace = tmpDir
	return tmpDir, nil
}

// ConfigPath is where the application reads and writes its config
func (d *Driver) ConfigPath() string {
	return filepath.Join(d.workspace, "config.toml")
}

// WriteEvents writes an event source into the workspace and returns its path
func (d *Driver) WriteEvents(name, content string) (string, error) {
	if d.workspace == "" {
		return "", fmt.Errorf("workspace not created")
	}
	path := filepath.Join(d.workspace, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// WriteImage creates a placeholder image file so the detail view finds it
func (d *Driver) WriteImage(name string) error {
	return os.WriteFile(filepath.Join(d.workspace, name), []byte("jpg"), 0o644)
}

// StartWithFixture creates a workspace holding eventsFixture and starts
// the application on it
func (d *Driver) StartWithFixture(args ...string) error {
	if _, err := d.CreateTestWorkspace(); err != nil {
		return err
	}
	path, err := d.WriteEvents("events.json", eventsFixture)
	if err != nil {
		return err
	}
	if err := d.WriteImage("dodo.jpg"); err != nil {
		return err
	}
	return d.StartApp(append(args, "--log-file", "-", path)...)
}
