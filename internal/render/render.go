package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/varoOP/matchday/internal/domain"
	"gopkg.in/yaml.v3"
)

// Tab selects one partition of the match board
type Tab string

const (
	TabLive      Tab = "live"
	TabCompleted Tab = "completed"
	TabUpcoming  Tab = "upcoming"
	TabAll       Tab = "all"
)

func ParseTab(s string) (Tab, error) {
	switch t := Tab(strings.ToLower(strings.TrimSpace(s))); t {
	case TabLive, TabCompleted, TabUpcoming, TabAll:
		return t, nil
	case "":
		return TabLive, nil
	}
	return "", errors.Errorf("unknown tab %q (live, completed, upcoming, all)", s)
}

const (
	NoLiveMatches = "No live matches right now. Check back soon!"
	NoTeamMatches = "No matches available for this team."
	NoNews        = "No news available"
	NoTeams       = "No teams found"
)

// Renderer writes view models in the configured output format
type Renderer struct {
	w      io.Writer
	format domain.OutputFormat
	loc    *time.Location
}

func New(w io.Writer, format domain.OutputFormat, loc *time.Location) *Renderer {
	if format == "" {
		format = domain.OutputText
	}
	if loc == nil {
		loc = time.Local
	}
	return &Renderer{w: w, format: format, loc: loc}
}

func (r *Renderer) structured(v any) (bool, error) {
	switch r.format {
	case domain.OutputJSON:
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return true, errors.Wrap(err, "failed to encode json")
		}
		_, err = fmt.Fprintln(r.w, string(b))
		return true, err
	case domain.OutputYAML:
		enc := yaml.NewEncoder(r.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, errors.Wrap(err, "failed to encode yaml")
		}
		return true, enc.Close()
	}
	return false, nil
}

func (r *Renderer) table() *tabwriter.Writer {
	return tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)
}

// Board writes one tab of the match board, or all of them
func (r *Renderer) Board(board *domain.MatchBoard, tab Tab) error {
	if board == nil {
		board = domain.NewMatchBoard()
	}

	if ok, err := r.structured(boardView(board, tab)); ok {
		return err
	}

	switch tab {
	case TabAll:
		for i, t := range []Tab{TabLive, TabCompleted, TabUpcoming} {
			if i > 0 {
				fmt.Fprintln(r.w)
			}
			fmt.Fprintf(r.w, "== %s ==\n", strings.ToUpper(string(t)))
			if err := r.matches(board, t); err != nil {
				return err
			}
		}
		return nil
	default:
		return r.matches(board, tab)
	}
}

func boardView(board *domain.MatchBoard, tab Tab) any {
	switch tab {
	case TabLive:
		return board.Live
	case TabCompleted:
		return board.Completed
	case TabUpcoming:
		return board.Upcoming
	}
	return board
}

func (r *Renderer) matches(board *domain.MatchBoard, tab Tab) error {
	var list []domain.ClassifiedMatch
	switch tab {
	case TabCompleted:
		list = board.Completed
	case TabUpcoming:
		list = board.Upcoming
	default:
		list = board.Live
	}

	if len(list) == 0 {
		if tab == TabLive {
			_, err := fmt.Fprintln(r.w, NoLiveMatches)
			return err
		}
		_, err := fmt.Fprintln(r.w, "No matches")
		return err
	}

	tw := r.table()
	for _, m := range list {
		if m.Time != "" {
			fmt.Fprintf(tw, "%s\t%s %s\t%s\n", m.Home, m.Date, m.Time, m.Away)
			continue
		}
		centre := m.Score + " " + m.Status
		if m.Date != "" {
			centre += " (" + m.Date + ")"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", m.Home, centre, m.Away)
	}
	return tw.Flush()
}

// TeamMatches writes a team's fixtures grouped by competition
func (r *Renderer) TeamMatches(teamID int, groups []domain.CompetitionGroup) error {
	if groups == nil {
		groups = []domain.CompetitionGroup{}
	}
	if ok, err := r.structured(groups); ok {
		return err
	}

	if len(groups) == 0 {
		_, err := fmt.Fprintln(r.w, NoTeamMatches)
		return err
	}

	for i, g := range groups {
		if i > 0 {
			fmt.Fprintln(r.w)
		}
		fmt.Fprintln(r.w, g.Name)

		tw := r.table()
		for _, f := range g.Matches {
			date := ""
			if !f.UTCDate.IsZero() {
				date = f.UTCDate.In(r.loc).Format("Mon, Jan 2, 03:04 PM")
			}
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\n", date, f.HomeTeam.Name, teamScore(f), f.AwayTeam.Name, indicator(f.Status))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func teamScore(f domain.RawFixture) string {
	if f.Status != domain.StatusFinished {
		return "vs"
	}
	home, away := 0, 0
	if f.Score.FullTime.Home != nil {
		home = *f.Score.FullTime.Home
	}
	if f.Score.FullTime.Away != nil {
		away = *f.Score.FullTime.Away
	}
	return fmt.Sprintf("%d - %d", home, away)
}

func indicator(s domain.FixtureStatus) string {
	switch {
	case s.IsLive():
		return "LIVE"
	case s.IsPending():
		return "UPCOMING"
	}
	return ""
}

func (r *Renderer) Standings(code string, rows []domain.StandingRow) error {
	if ok, err := r.structured(rows); ok {
		return err
	}

	tw := r.table()
	fmt.Fprintf(tw, "#\t%s\tP\tW\tD\tL\tGD\tPTS\n", code)
	for _, row := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%d\t%+d\t%d\n",
			row.Position, row.Team.DisplayName(), row.PlayedGames, row.Won, row.Draw, row.Lost, row.GoalDifference, row.Points)
	}
	return tw.Flush()
}

func (r *Renderer) Teams(teams []domain.Team) error {
	if ok, err := r.structured(teams); ok {
		return err
	}

	if len(teams) == 0 {
		_, err := fmt.Fprintln(r.w, NoTeams)
		return err
	}

	tw := r.table()
	for _, t := range teams {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", t.ID, t.Name, t.TLA)
	}
	return tw.Flush()
}

// Squad writes a team profile with its players
func (r *Renderer) Squad(p *domain.TeamProfile) error {
	if ok, err := r.structured(p); ok {
		return err
	}

	fmt.Fprintln(r.w, p.Name)
	if p.Venue != "" {
		fmt.Fprintf(r.w, "Venue: %s\n", p.Venue)
	}
	if p.Founded != 0 {
		fmt.Fprintf(r.w, "Founded: %d\n", p.Founded)
	}
	fmt.Fprintln(r.w)

	tw := r.table()
	for _, pl := range p.Squad {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", pl.Name, pl.Position, pl.Nationality)
	}
	return tw.Flush()
}

func (r *Renderer) News(articles []domain.Article) error {
	if articles == nil {
		articles = []domain.Article{}
	}
	if ok, err := r.structured(articles); ok {
		return err
	}

	if len(articles) == 0 {
		_, err := fmt.Fprintln(r.w, NoNews)
		return err
	}

	for i, a := range articles {
		if i > 0 {
			fmt.Fprintln(r.w)
		}
		fmt.Fprintf(r.w, "%s\n%s · %s\n", a.Title, a.Source, a.PublishedAt)
		if a.Description != "" {
			fmt.Fprintln(r.w, a.Description)
		}
		fmt.Fprintln(r.w, a.URL)
	}
	return nil
}
