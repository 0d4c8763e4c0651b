// Command fitcoach-cli runs the training engine offline against a local
// SQLite database.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/claude/fitcoach/internal/engine"
	"github.com/claude/fitcoach/internal/healthrules"
	"github.com/claude/fitcoach/internal/ingest/alpha"
	"github.com/claude/fitcoach/internal/localstore"
	"github.com/claude/fitcoach/internal/models"
	"github.com/claude/fitcoach/internal/service"
)

// Version is set at build time via -ldflags.
var Version = "dev"

const usage = `Usage: fitcoach-cli [-dir DIR] [-user N] [-catalog FILE] [-v] <command> [flags]

Commands:
  profile     store body measurements and health ids
  plan        generate a workout plan
  nutrition   calculate nutrition targets
  log         record that a muscle was trained
  recovered   mark a muscle as recovered
  import      log muscle usage from an Alpha Progression CSV export
  assess      assess injury risk from logged usage
  version     print version
`

var errUsage = errors.New("invalid usage")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	global := flag.NewFlagSet("fitcoach-cli", flag.ContinueOnError)
	global.SetOutput(stderr)
	global.Usage = func() { fmt.Fprint(stderr, usage) }
	dir := global.String("dir", "", "data directory (default ~/.fitcoach)")
	userID := global.Int("user", 1, "local user ID")
	catalogPath := global.String("catalog", "", "health rules YAML file (default: built-in)")
	verbose := global.Bool("v", false, "debug logging")
	if err := global.Parse(args); err != nil {
		return errUsage
	}
	if global.NArg() == 0 {
		global.Usage()
		return errUsage
	}
	cmd, cmdArgs := global.Arg(0), global.Args()[1:]
	if cmd == "version" {
		fmt.Fprintln(stdout, "fitcoach-cli", Version)
		return nil
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if *dir == "" {
		d, err := localstore.DefaultDir()
		if err != nil {
			return err
		}
		*dir = d
	}
	store, err := localstore.Open(*dir)
	if err != nil {
		return err
	}
	defer store.Close()

	catalog := healthrules.Default()
	if *catalogPath != "" {
		if catalog, err = healthrules.LoadFile(*catalogPath); err != nil {
			return err
		}
	}
	svc := service.New(store, engine.New(catalog, log), 0, log)

	c := &cli{svc: svc, alpha: alpha.NewProvider(svc, log), userID: *userID, stdout: stdout, stderr: stderr}
	ctx := context.Background()
	switch cmd {
	case "profile":
		return c.profile(ctx, cmdArgs)
	case "plan":
		return c.plan(ctx, cmdArgs)
	case "nutrition":
		return c.nutrition(ctx, cmdArgs)
	case "log":
		return c.log(ctx, cmdArgs)
	case "recovered":
		return c.recovered(ctx, cmdArgs)
	case "assess":
		return c.assess(ctx, cmdArgs)
	case "import":
		return c.importAlpha(ctx, cmdArgs)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", cmd, usage)
		return errUsage
	}
}

type cli struct {
	svc    *service.Service
	alpha  *alpha.Provider
	userID int
	stdout io.Writer
	stderr io.Writer
}

func (c *cli) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	return fs
}

// bodyFlags registers the physiological measurement flags on fs.
func bodyFlags(fs *flag.FlagSet) func() models.PhysiologicalInput {
	age := fs.Int("age", 0, "age in years")
	sex := fs.String("sex", "", "male or female")
	weight := fs.Float64("weight", 0, "body weight in kg")
	height := fs.Float64("height", 0, "height in cm")
	activity := fs.String("activity", "", "sedentary, light, moderate, active or very_active")
	goal := fs.String("goal", "", "muscle_gain, fat_loss, endurance, sport_specific or general_fitness")
	return func() models.PhysiologicalInput {
		return models.PhysiologicalInput{
			AgeYears:      *age,
			Sex:           models.Sex(*sex),
			WeightKg:      *weight,
			HeightCm:      *height,
			ActivityLevel: models.ActivityLevel(*activity),
			FitnessGoal:   models.FitnessGoal(*goal),
		}
	}
}

func (c *cli) profile(ctx context.Context, args []string) error {
	fs := c.flags("profile")
	body := bodyFlags(fs)
	limitations := fs.String("limitations", "", "comma-separated physical limitation ids")
	conditions := fs.String("conditions", "", "comma-separated medical condition ids")
	diets := fs.String("diets", "", "comma-separated dietary preference ids")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	health := models.HealthProfile{
		PhysicalLimitations: splitList(*limitations),
		MedicalConditions:   splitList(*conditions),
		DietaryPreferences:  splitList(*diets),
	}
	p, err := c.svc.SaveProfile(ctx, c.userID, body(), health)
	if err != nil {
		return err
	}
	return c.print(p)
}

func (c *cli) plan(ctx context.Context, args []string) error {
	fs := c.flags("plan")
	goal := fs.String("goal", string(models.GoalGeneralFitness), "training goal")
	level := fs.String("level", string(models.LevelBeginner), "beginner, intermediate or advanced")
	days := fs.Int("days", 3, "training days per week (2-6)")
	sport := fs.String("sport", "", "sport for sport_specific goals")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	res, err := c.svc.GenerateWorkout(ctx, c.userID, models.WorkoutRequest{
		Goal:            models.FitnessGoal(*goal),
		ExperienceLevel: models.ExperienceLevel(*level),
		DaysPerWeek:     *days,
		Sport:           *sport,
	})
	if err != nil {
		return err
	}
	return c.print(res)
}

// nutrition uses the stored profile for anything not given on the command line.
func (c *cli) nutrition(ctx context.Context, args []string) error {
	fs := c.flags("nutrition")
	body := bodyFlags(fs)
	conditions := fs.String("conditions", "", "comma-separated medical condition ids")
	diets := fs.String("diets", "", "comma-separated dietary preference ids")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	var req service.NutritionRequest
	if in := body(); in != (models.PhysiologicalInput{}) {
		req.Input = &in
	}
	if *conditions != "" || *diets != "" {
		req.Health = &models.HealthProfile{
			MedicalConditions:  splitList(*conditions),
			DietaryPreferences: splitList(*diets),
		}
	}
	res, err := c.svc.CalculateNutrition(ctx, c.userID, req)
	if err != nil {
		return err
	}
	return c.print(res)
}

func (c *cli) log(ctx context.Context, args []string) error {
	fs := c.flags("log")
	muscle := fs.String("muscle", "", "muscle id (required)")
	name := fs.String("name", "", "display name (default: the id)")
	intensity := fs.Int("intensity", 0, "session intensity 1-10 (required)")
	recovery := fs.Int("recovery-hours", 0, "recovery window in hours (default 48)")
	at := fs.String("at", "", "when it was trained, RFC 3339 (default: now)")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	entry := models.MuscleUsageLog{
		MuscleID:              *muscle,
		MuscleName:            *name,
		Intensity:             *intensity,
		RequiredRecoveryHours: *recovery,
	}
	if *at != "" {
		t, err := time.Parse(time.RFC3339, *at)
		if err != nil {
			return fmt.Errorf("parsing -at: %w", err)
		}
		entry.WorkedAt = t
	}
	rec, err := c.svc.LogMuscleUsage(ctx, c.userID, entry)
	if err != nil {
		return err
	}
	return c.print(rec)
}

func (c *cli) recovered(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(c.stderr, "Usage: fitcoach-cli recovered <muscle-id>")
		return errUsage
	}
	if err := c.svc.MarkRecovered(ctx, c.userID, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "%s marked recovered\n", args[0])
	return nil
}

func (c *cli) assess(ctx context.Context, args []string) error {
	fs := c.flags("assess")
	planned := fs.Int("planned", 0, "planned sessions per week (0 skips the check)")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	report, err := c.svc.AssessInjuryRisk(ctx, c.userID, *planned)
	if err != nil {
		return err
	}
	return c.print(report)
}

func (c *cli) importAlpha(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(c.stderr, "Usage: fitcoach-cli import <export.csv>")
		return errUsage
	}
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	res, err := c.alpha.Ingest(ctx, f, c.userID)
	if err != nil {
		return err
	}
	return c.print(res)
}

func (c *cli) print(v any) error {
	enc := json.NewEncoder(c.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
