// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ember Contributors

package handlers

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/emberpath/ember/internal/command"
	"github.com/emberpath/ember/internal/world"
)

// Who lists every connected character and how long it has been online.
func Who(ctx context.Context, exec *command.Execution) error {
	ids := exec.Sessions.Connected()

	type row struct {
		name   string
		online time.Duration
	}
	now := time.Now()

	rows := make([]row, 0, len(ids))
	for _, id := range ids {
		th, err := world.Fetch(exec.Tx, id)
		if errors.Is(err, world.ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		var online time.Duration
		if s := exec.Sessions.Get(exec.Sessions.LinkFor(id)); s != nil {
			online = now.Sub(s.LoginAt)
		}
		rows = append(rows, row{name: th.DisplayName(), online: online})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].name < rows[j].name })

	exec.Output("Connected:")
	for _, r := range rows {
		exec.Outputf("  %-28s %s", r.name, formatOnline(r.online))
	}
	if len(rows) == 1 {
		exec.Output("1 character connected.")
	} else {
		exec.Outputf("%d characters connected.", len(rows))
	}
	return nil
}

func formatOnline(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh%dm", h, m)
	}
	if m > 0 {
		return fmt.Sprintf("%dm%ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
