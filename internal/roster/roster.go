// Package roster loads the statically configured team rosters used when a
// team has no recorded activity yet.
package roster

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"example.com/leaderboard/internal/domain"
)

// File is the on-disk roster document:
//
//	teams:
//	  - name: Road Runners
//	    members: [Alice, Bob]
type File struct {
	Teams []Team `yaml:"teams"`
}

// Team is one configured roster.
type Team struct {
	Name    string   `yaml:"name"`
	Members []string `yaml:"members"`
}

// Load reads and validates the roster file at path.
func Load(path string) (domain.StaticRosters, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("roster: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a roster document. Team names must be unique and non-empty;
// blank and repeated members are dropped, keeping first occurrence.
func Parse(data []byte) (domain.StaticRosters, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("roster: parse: %w", err)
	}

	out := make(domain.StaticRosters, len(f.Teams))
	for i, t := range f.Teams {
		name := strings.TrimSpace(t.Name)
		if name == "" {
			return nil, fmt.Errorf("roster: teams[%d]: name is required", i)
		}
		if _, dup := out[name]; dup {
			return nil, fmt.Errorf("roster: duplicate team %q", name)
		}
		seen := make(map[string]struct{}, len(t.Members))
		members := make([]string, 0, len(t.Members))
		for _, m := range t.Members {
			m = strings.TrimSpace(m)
			if m == "" {
				continue
			}
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			members = append(members, m)
		}
		out[name] = members
	}
	return out, nil
}

// Watch reloads path whenever it is written or replaced and passes the new
// rosters to onChange. The parent directory is watched so that editors that
// save by rename keep triggering reloads. A reload that fails keeps the
// previous rosters. It runs until ctx is done.
func Watch(ctx context.Context, path string, logger *log.Logger, onChange func(domain.StaticRosters)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	target := filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			rosters, err := Load(path)
			if err != nil {
				logger.Printf("roster reload failed, keeping previous rosters: %v", err)
				continue
			}
			logger.Printf("roster reloaded (teams=%d)", len(rosters))
			onChange(rosters)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Printf("roster watcher error: %v", err)
		}
	}
}
