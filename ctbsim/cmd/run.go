package cmd

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smokemonkey/godot-ctb-game-sub000/actors"
	"github.com/smokemonkey/godot-ctb-game-sub000/calendar"
	"github.com/smokemonkey/godot-ctb-game-sub000/datarecording"
	"github.com/smokemonkey/godot-ctb-game-sub000/monitoring"
	"github.com/smokemonkey/godot-ctb-game-sub000/sim"
)

var runFlags = struct {
	turns       int
	bufferSize  int
	characters  []string
	seed        int64
	eraName     string
	monitor     bool
	monitorPort int
	record      bool
	recordPath  string
	verbose     bool
}{}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a simulation for a number of turns.",
	Long: `Run a simulation for a number of turns. Each turn advances the ` +
		`calendar to the next scheduled entry and executes it. Characters ` +
		`act at random intervals; the season changes every 90 days.`,
	RunE: runSimulation,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().IntVar(&runFlags.turns, "turns", 20,
		"number of turns to process")
	runCmd.Flags().IntVar(&runFlags.bufferSize, "buffer-size", 180*24,
		"time wheel horizon in ticks")
	runCmd.Flags().StringSliceVar(&runFlags.characters, "characters",
		[]string{"Alice:Wei", "Bob:Shu", "Charlie:Wu"},
		"characters to register, as name or name:faction")
	runCmd.Flags().Int64Var(&runFlags.seed, "seed", 0,
		"random seed, 0 picks one")
	runCmd.Flags().StringVar(&runFlags.eraName, "era", "Kaiyuan",
		"era name used when printing dates")
	runCmd.Flags().BoolVar(&runFlags.monitor, "monitor", false,
		"serve the monitoring API while running")
	runCmd.Flags().IntVar(&runFlags.monitorPort, "monitor-port", 0,
		"monitoring port, 0 picks one")
	runCmd.Flags().BoolVar(&runFlags.record, "record", false,
		"record each turn into a SQLite database")
	runCmd.Flags().StringVar(&runFlags.recordPath, "record-path", "",
		"database path for --record, empty picks one")
	runCmd.Flags().BoolVar(&runFlags.verbose, "verbose", false,
		"log every executed action")
}

func runSimulation(cmd *cobra.Command, _ []string) error {
	applyEnvDefaults(cmd)

	seed := runFlags.seed
	if seed == 0 {
		seed = rand.Int63()
	}
	rng := rand.New(rand.NewSource(seed))

	cal := calendar.New()
	cal.StartNewEra(runFlags.eraName)

	scheduler := sim.NewScheduler(runFlags.bufferSize, cal)

	if err := registerWorld(scheduler, rng); err != nil {
		return err
	}

	if runFlags.verbose {
		logger := log.New(os.Stdout, "", 0)
		scheduler.AcceptHook(sim.NewActionLogger(logger))
	}

	if runFlags.record {
		recorder := datarecording.New(runFlags.recordPath)
		defer recorder.Close()

		scheduler.AcceptHook(datarecording.NewTurnRecorder(recorder))
	}

	if runFlags.monitor {
		monitor := monitoring.NewMonitor().
			WithPortNumber(runFlags.monitorPort)
		monitor.RegisterScheduler(scheduler)
		monitor.RegisterDateFormatter(cal)
		monitor.StartServer()
	}

	if err := scheduler.Start(); err != nil {
		return err
	}

	fmt.Printf("Seed %d, %d registered, starting at %s\n",
		seed, len(scheduler.RegisteredIDs()), cal.FormatEra(false))

	for turn := 1; turn <= runFlags.turns; turn++ {
		result, err := scheduler.ProcessNextTurn()
		if err != nil {
			if errors.Is(err, sim.ErrStalled) {
				fmt.Printf("Turn %d: nothing scheduled, stopping (%v)\n",
					turn, err)
				return nil
			}

			return err
		}

		line := fmt.Sprintf("Turn %d: %s, %s %q",
			turn, cal.FormatEra(true),
			result.ExecutedKind, result.ExecutedName)
		if result.ExecuteErr != nil {
			line += fmt.Sprintf(" (failed: %v)", result.ExecuteErr)
		}
		fmt.Println(line)
	}

	return nil
}

// applyEnvDefaults lets a .env file (or the environment) override the
// defaults of flags the user did not set explicitly.
func applyEnvDefaults(cmd *cobra.Command) {
	if !cmd.Flags().Changed("seed") {
		if v, err := strconv.ParseInt(os.Getenv("CTBSIM_SEED"), 10, 64); err == nil {
			runFlags.seed = v
		}
	}

	if !cmd.Flags().Changed("era") {
		if v := os.Getenv("CTBSIM_ERA"); v != "" {
			runFlags.eraName = v
		}
	}

	if !cmd.Flags().Changed("record-path") {
		if v := os.Getenv("CTBSIM_RECORD_PATH"); v != "" {
			runFlags.recordPath = v
		}
	}
}

// registerWorld fills the scheduler with the season cycle and the
// characters named on the command line.
func registerWorld(scheduler *sim.Scheduler, rng *rand.Rand) error {
	if err := scheduler.Register(actors.NewSeasonCycle()); err != nil {
		return err
	}

	for _, entry := range runFlags.characters {
		name, faction := entry, ""
		if i := strings.IndexByte(entry, ':'); i >= 0 {
			name, faction = entry[:i], entry[i+1:]
		}

		c := actors.NewCharacter(name, faction, rng)
		if err := scheduler.Register(c); err != nil {
			return err
		}
	}

	return nil
}
