package split

// exerciseDef is a catalog entry. Reps and sets are only consulted by the
// rigid (fixed-rep) templates; the goal-driven templates derive both from
// the request.
type exerciseDef struct {
	name     string
	muscles  []string
	rest     int
	compound bool
	notes    string
	reps     string
	sets     int
}

// fixed returns a copy with a fixed prescription for rigid templates.
func (e exerciseDef) fixed(sets int, reps string) exerciseDef {
	e.sets = sets
	e.reps = reps
	return e
}

// Compound lifts.
var (
	backSquat = exerciseDef{
		name: "Barbell Back Squat", muscles: []string{"quadriceps", "glutes", "hamstrings"},
		rest: 150, compound: true, notes: "Brace before descending; hips and knees break together.",
	}
	benchPress = exerciseDef{
		name: "Barbell Bench Press", muscles: []string{"chest", "triceps", "shoulders"},
		rest: 150, compound: true, notes: "Shoulder blades retracted, feet planted.",
	}
	bentOverRow = exerciseDef{
		name: "Barbell Bent-Over Row", muscles: []string{"upper back", "lats", "biceps"},
		rest: 120, compound: true,
	}
	overheadPress = exerciseDef{
		name: "Overhead Press", muscles: []string{"shoulders", "triceps"},
		rest: 120, compound: true,
	}
	romanianDeadlift = exerciseDef{
		name: "Romanian Deadlift", muscles: []string{"hamstrings", "glutes", "lower back"},
		rest: 120, compound: true, notes: "Hinge at the hips and keep the bar close to the legs.",
	}
	deadlift = exerciseDef{
		name: "Conventional Deadlift", muscles: []string{"hamstrings", "glutes", "lower back", "upper back"},
		rest: 180, compound: true,
	}
	pullUp = exerciseDef{
		name: "Pull-Up", muscles: []string{"lats", "biceps", "upper back"},
		rest: 120, compound: true, notes: "Use an assisted variation until bodyweight reps are clean.",
	}
	inclineDumbbellPress = exerciseDef{
		name: "Incline Dumbbell Press", muscles: []string{"chest", "shoulders", "triceps"},
		rest: 90, compound: true,
	}
	legPress = exerciseDef{
		name: "Leg Press", muscles: []string{"quadriceps", "glutes"},
		rest: 120, compound: true,
	}
	walkingLunge = exerciseDef{
		name: "Walking Lunge", muscles: []string{"quadriceps", "glutes", "hamstrings"},
		rest: 90, compound: true,
	}
	bulgarianSplitSquat = exerciseDef{
		name: "Bulgarian Split Squat", muscles: []string{"quadriceps", "glutes"},
		rest: 90, compound: true,
	}
	hipThrust = exerciseDef{
		name: "Barbell Hip Thrust", muscles: []string{"glutes", "hamstrings"},
		rest: 90, compound: true,
	}
	seatedCableRow = exerciseDef{
		name: "Seated Cable Row", muscles: []string{"upper back", "lats", "biceps"},
		rest: 90, compound: true,
	}
	latPulldown = exerciseDef{
		name: "Lat Pulldown", muscles: []string{"lats", "biceps"},
		rest: 90, compound: true,
	}
	dumbbellShoulderPress = exerciseDef{
		name: "Dumbbell Shoulder Press", muscles: []string{"shoulders", "triceps"},
		rest: 90, compound: true,
	}
	dips = exerciseDef{
		name: "Parallel Bar Dips", muscles: []string{"chest", "triceps", "shoulders"},
		rest: 90, compound: true,
	}
	closeGripBench = exerciseDef{
		name: "Close-Grip Bench Press", muscles: []string{"triceps", "chest"},
		rest: 90, compound: true,
	}
	pushUp = exerciseDef{
		name: "Push-Up", muscles: []string{"chest", "triceps", "shoulders"},
		rest: 60, compound: true,
	}
	gobletSquat = exerciseDef{
		name: "Goblet Squat", muscles: []string{"quadriceps", "glutes"},
		rest: 90, compound: true,
	}
	stepUp = exerciseDef{
		name: "Dumbbell Step-Up", muscles: []string{"quadriceps", "glutes"},
		rest: 60, compound: true,
	}
	powerClean = exerciseDef{
		name: "Power Clean", muscles: []string{"hamstrings", "glutes", "upper back", "shoulders"},
		rest: 150, compound: true, notes: "Prioritize bar speed over load.",
	}
	kettlebellSwing = exerciseDef{
		name: "Kettlebell Swing", muscles: []string{"glutes", "hamstrings", "lower back"},
		rest: 60, compound: true,
	}
)

// Isolation and accessory work.
var (
	lateralRaise = exerciseDef{
		name: "Dumbbell Lateral Raise", muscles: []string{"shoulders"}, rest: 60,
	}
	tricepPushdown = exerciseDef{
		name: "Cable Tricep Pushdown", muscles: []string{"triceps"}, rest: 60,
	}
	overheadTricepExtension = exerciseDef{
		name: "Overhead Tricep Extension", muscles: []string{"triceps"}, rest: 60,
	}
	facePull = exerciseDef{
		name: "Face Pull", muscles: []string{"rear delts", "upper back"}, rest: 60,
	}
	barbellCurl = exerciseDef{
		name: "Barbell Bicep Curl", muscles: []string{"biceps"}, rest: 60,
	}
	hammerCurl = exerciseDef{
		name: "Hammer Curl", muscles: []string{"biceps", "forearms"}, rest: 60,
	}
	preacherCurl = exerciseDef{
		name: "Preacher Curl", muscles: []string{"biceps"}, rest: 60,
	}
	legCurl = exerciseDef{
		name: "Lying Leg Curl", muscles: []string{"hamstrings"}, rest: 60,
	}
	legExtension = exerciseDef{
		name: "Leg Extension", muscles: []string{"quadriceps"}, rest: 60,
	}
	standingCalfRaise = exerciseDef{
		name: "Standing Calf Raise", muscles: []string{"calves"}, rest: 45,
	}
	seatedCalfRaise = exerciseDef{
		name: "Seated Calf Raise", muscles: []string{"calves"}, rest: 45,
	}
	cableFly = exerciseDef{
		name: "Cable Fly", muscles: []string{"chest"}, rest: 60,
	}
	rearDeltFly = exerciseDef{
		name: "Rear Delt Fly", muscles: []string{"rear delts"}, rest: 60,
	}
	barbellShrug = exerciseDef{
		name: "Barbell Shrug", muscles: []string{"traps"}, rest: 60,
	}
	plank = exerciseDef{
		name: "Plank", muscles: []string{"core"}, rest: 45,
	}
	sidePlank = exerciseDef{
		name: "Side Plank", muscles: []string{"core", "obliques"}, rest: 45,
	}
	hangingLegRaise = exerciseDef{
		name: "Hanging Leg Raise", muscles: []string{"core", "hip flexors"}, rest: 60,
	}
	deadBug = exerciseDef{
		name: "Dead Bug", muscles: []string{"core"}, rest: 45,
	}
	gluteBridge = exerciseDef{
		name: "Glute Bridge", muscles: []string{"glutes", "hamstrings"}, rest: 45,
	}
	pallofPress = exerciseDef{
		name: "Pallof Press", muscles: []string{"core", "obliques"}, rest: 45,
	}
	copenhagenPlank = exerciseDef{
		name: "Copenhagen Plank", muscles: []string{"adductors", "core"}, rest: 45,
	}
	nordicCurl = exerciseDef{
		name: "Nordic Hamstring Curl", muscles: []string{"hamstrings"},
		rest: 90, notes: "Lower as slowly as possible; use a band for assistance.",
	}
	bandExternalRotation = exerciseDef{
		name: "Band External Rotation", muscles: []string{"rotator cuff"}, rest: 45,
	}
)

// Conditioning and skill work used by the sport templates.
var (
	boxJump = exerciseDef{
		name: "Box Jump", muscles: []string{"quadriceps", "glutes", "calves"},
		rest: 90, notes: "Step down between reps to limit landing stress.",
	}
	singleLegHop = exerciseDef{
		name: "Single-Leg Hop", muscles: []string{"calves", "quadriceps"}, rest: 60,
	}
	sprintIntervals = exerciseDef{
		name: "Sprint Intervals", muscles: []string{"cardiovascular", "hamstrings", "calves"}, rest: 120,
	}
	tempoRun = exerciseDef{
		name: "Tempo Run", muscles: []string{"cardiovascular", "calves"},
		rest: 0, notes: "Comfortably hard: you can speak in short phrases.",
	}
	trackIntervals = exerciseDef{
		name: "Track Intervals (400 m)", muscles: []string{"cardiovascular", "hamstrings", "calves"}, rest: 90,
	}
	bikeIntervals = exerciseDef{
		name: "Stationary Bike Intervals", muscles: []string{"cardiovascular", "quadriceps"}, rest: 120,
	}
	enduranceRide = exerciseDef{
		name: "Zone 2 Endurance Ride", muscles: []string{"cardiovascular", "quadriceps"}, rest: 0,
	}
	swimIntervals = exerciseDef{
		name: "Swimming Intervals (100 m)", muscles: []string{"cardiovascular", "lats", "shoulders"}, rest: 30,
	}
	kickSets = exerciseDef{
		name: "Kickboard Sets (50 m)", muscles: []string{"cardiovascular", "hip flexors", "quadriceps"}, rest: 30,
	}
	agilityLadder = exerciseDef{
		name: "Agility Ladder Drills", muscles: []string{"calves", "cardiovascular"}, rest: 60,
	}
	lateralBound = exerciseDef{
		name: "Lateral Bound", muscles: []string{"glutes", "adductors", "calves"}, rest: 60,
	}
	shuttleRun = exerciseDef{
		name: "Shuttle Sprint", muscles: []string{"cardiovascular", "quadriceps", "calves"}, rest: 90,
	}
	medBallThrow = exerciseDef{
		name: "Rotational Medicine Ball Throw", muscles: []string{"obliques", "shoulders"}, rest: 60,
	}
	hipMobility = exerciseDef{
		name: "Hip Mobility Flow", muscles: []string{"hip flexors", "glutes"}, rest: 0,
	}
)
