package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"

	"github.com/Garsondee/Conquest/internal/conquest"
)

// stalemateWindow is how long the front may go without a capture before an
// unfinished run counts as stalled.
const stalemateWindow = 1000

type runStats struct {
	runIndex int
	seed     int64
	ticks    int
	outcome  conquest.Outcome
	leader   string

	firstDispatchTick    int
	firstCaptureTick     int
	lastCaptureTick      int
	firstEliminationTick int

	dispatches     int
	captures       int
	defences       int
	reinforcements int
	eliminated     []string

	standings []conquest.Standing
	log       string
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var preset string
	var realtime bool
	var verbose bool
	var showLog bool

	flag.IntVar(&runs, "runs", 5, "number of headless matches")
	flag.IntVar(&ticks, "ticks", 20000, "tick limit per match")
	flag.Int64Var(&seedBase, "seed-base", 1, "RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&preset, "preset", "classic", fmt.Sprintf("preset name %v", conquest.PresetNames()))
	flag.BoolVar(&realtime, "realtime", false, "pace ticks at the preset's TPS")
	flag.BoolVar(&verbose, "verbose", false, "record per-tick garrison samples")
	flag.BoolVar(&showLog, "log", false, "print each run's event log")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}
	cfg, err := conquest.LoadPresetConfig(preset)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	cfg.Autopilot = true

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("=== Headless Conquest Report ===\n")
	fmt.Printf("preset=%s runs=%d ticks=%d seed_base=%d seed_step=%d realtime=%v\n\n",
		preset, runs, ticks, seedBase, seedStep, realtime)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		rs, err := runMatch(ctx, cfg, i+1, seed, ticks, realtime, verbose)
		if err != nil {
			fmt.Printf("error: run %d (seed=%d): %v\n", i+1, seed, err)
			break
		}
		all = append(all, rs)
		printRun(rs, showLog)
	}
	if len(all) > 0 {
		printAggregate(all)
	}
}

func runMatch(ctx context.Context, cfg conquest.Config, runIndex int, seed int64, ticks int, realtime, verbose bool) (runStats, error) {
	cfg.Seed = seed
	w, err := conquest.NewWorld(cfg)
	if err != nil {
		return runStats{}, err
	}
	w.SetVerbose(verbose)

	l := conquest.NewLoop(w, nil, cfg.TicksPerSecond, realtime)
	l.MaxTicks = ticks
	if _, err := l.Run(ctx); err != nil {
		return runStats{}, err
	}
	return collectStats(w, runIndex), nil
}

func collectStats(w *conquest.World, runIndex int) runStats {
	r := w.Report()
	entries := w.Log().Entries()
	return runStats{
		runIndex:             runIndex,
		seed:                 r.Seed,
		ticks:                r.Tick,
		outcome:              r.Outcome,
		leader:               r.Leader,
		firstDispatchTick:    firstTick(entries, "fleet", "dispatch", ""),
		firstCaptureTick:     firstTick(entries, "invasion", "capture", ""),
		lastCaptureTick:      lastTick(entries, "invasion", "capture", ""),
		firstEliminationTick: firstTick(entries, "player", "eliminated", ""),
		dispatches:           r.Dispatches,
		captures:             r.Captures,
		defences:             r.Defences,
		reinforcements:       w.Log().CountCategory("invasion", "reinforce"),
		eliminated:           r.Eliminated,
		standings:            r.Standings,
		log:                  w.Log().Format(),
	}
}

func firstTick(entries []conquest.EventLogEntry, category, key, contains string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Tick
		}
	}
	return -1
}

func lastTick(entries []conquest.EventLogEntry, category, key, contains string) int {
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		if e.Category != category || e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Tick
		}
	}
	return -1
}

// detectStalemate reports whether an unfinished run has stopped changing hands.
func detectStalemate(rs runStats) (bool, string) {
	if rs.outcome.Done() {
		return false, "finished_" + rs.outcome.String()
	}
	if rs.captures == 0 {
		return true, "no_captures"
	}
	if quiet := rs.ticks - rs.lastCaptureTick; quiet >= stalemateWindow {
		return true, fmt.Sprintf("quiet_front(%d ticks)", quiet)
	}
	return false, "contested"
}

func printRun(rs runStats, showLog bool) {
	stalled, reason := detectStalemate(rs)
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("result: outcome=%s ticks=%d leader=%s stalemate=%v (%s)\n",
		rs.outcome, rs.ticks, rs.leader, stalled, reason)
	fmt.Printf("phase_markers: first_dispatch=%d first_capture=%d last_capture=%d first_elimination=%d\n",
		rs.firstDispatchTick, rs.firstCaptureTick, rs.lastCaptureTick, rs.firstEliminationTick)
	fmt.Printf("event_totals: dispatch=%d capture=%d defend=%d reinforce=%d\n",
		rs.dispatches, rs.captures, rs.defences, rs.reinforcements)
	fmt.Printf("eliminated: %s\n", joinOrNone(rs.eliminated))
	fmt.Print(conquest.FormatStandings(rs.ticks, rs.standings))
	if showLog {
		fmt.Print(rs.log)
	}
	fmt.Println()
}

func printAggregate(all []runStats) {
	outcomes := map[string]int{}
	leaders := map[string]int{}
	totalDispatch := 0
	totalCapture := 0
	totalDefend := 0
	stalemates := 0
	tickCounts := make([]int, 0, len(all))
	captureTicks := make([]int, 0, len(all))
	eliminationTicks := make([]int, 0, len(all))

	for _, rs := range all {
		outcomes[rs.outcome.String()]++
		leaders[rs.leader]++
		totalDispatch += rs.dispatches
		totalCapture += rs.captures
		totalDefend += rs.defences
		tickCounts = append(tickCounts, rs.ticks)
		if rs.firstCaptureTick >= 0 {
			captureTicks = append(captureTicks, rs.firstCaptureTick)
		}
		if rs.firstEliminationTick >= 0 {
			eliminationTicks = append(eliminationTicks, rs.firstEliminationTick)
		}
		if s, _ := detectStalemate(rs); s {
			stalemates++
		}
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d stalemates=%d\n", len(all), stalemates)
	fmt.Printf("outcomes: %s\n", formatTally(outcomes))
	fmt.Printf("leaders: %s\n", formatTally(leaders))
	fmt.Printf("avg_events_per_run: dispatch=%.1f capture=%.1f defend=%.1f\n",
		avg(totalDispatch, len(all)), avg(totalCapture, len(all)), avg(totalDefend, len(all)))
	fmt.Printf("avg_ticks: match=%s first_capture=%s first_elimination=%s\n",
		avgTickString(tickCounts), avgTickString(captureTicks), avgTickString(eliminationTicks))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

// formatTally renders counts as "name=n" pairs, most common first, then by name.
func formatTally(counts map[string]int) string {
	if len(counts) == 0 {
		return "none"
	}
	names := make([]string, 0, len(counts))
	for k := range counts {
		names = append(names, k)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = fmt.Sprintf("%s=%d", n, counts[n])
	}
	return strings.Join(parts, " ")
}

func joinOrNone(s []string) string {
	if len(s) == 0 {
		return "none"
	}
	return strings.Join(s, ",")
}
