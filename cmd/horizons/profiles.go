package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/horizons-app/horizons/internal/models"
	"github.com/horizons-app/horizons/internal/profile"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List the profiles saved on this machine",
	RunE:  runProfiles,
}

func runProfiles(cmd *cobra.Command, args []string) error {
	rows, err := profileRows()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(rows) == 0 {
		fmt.Fprintf(out, "No saved profiles in %s\n", models.SaveDir)
		return nil
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Profile", "Account", "Games", "Careers", "Last activity").
		Rows(rows...)
	fmt.Fprintln(out, t.Render())
	return nil
}

// profileRows summarizes every saved profile, in directory order.
func profileRows() ([][]string, error) {
	names, err := models.ListProfiles()
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		d, err := profile.Open(name)
		if err != nil {
			return nil, err
		}
		p := d.Profile
		account := "guest"
		if p.User != nil {
			account = p.User.Email
		}
		last := "-"
		if len(p.Activities) > 0 {
			last = profile.ActivityAge(p.Activities[0])
		}
		rows = append(rows, []string{
			name,
			account,
			strconv.Itoa(p.GamesPlayed),
			strconv.Itoa(p.CareersExplored),
			last,
		})
	}
	return rows, nil
}
