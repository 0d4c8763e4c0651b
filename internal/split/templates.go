package split

// dayDef is one day of a template before level and goal parameters are applied.
type dayDef struct {
	label     string
	tag       string
	focus     []string
	exercises []exerciseDef
}

// Goal-driven templates. Sets and reps come from the request.
var (
	fullBodyDay = dayDef{
		label: "Full Body", tag: "full_body",
		focus: []string{"legs", "chest", "back", "shoulders", "arms"},
		exercises: []exerciseDef{
			backSquat, benchPress, bentOverRow, overheadPress, romanianDeadlift,
			barbellCurl, tricepPushdown, plank,
		},
	}

	pushDay = dayDef{
		label: "Push", tag: "push",
		focus: []string{"chest", "shoulders", "triceps"},
		exercises: []exerciseDef{
			benchPress, overheadPress, inclineDumbbellPress,
			lateralRaise, tricepPushdown, overheadTricepExtension,
		},
	}
	pullDay = dayDef{
		label: "Pull", tag: "pull",
		focus: []string{"back", "biceps", "rear delts"},
		exercises: []exerciseDef{
			deadlift, pullUp, bentOverRow,
			facePull, barbellCurl, hammerCurl,
		},
	}
	legDay = dayDef{
		label: "Legs", tag: "legs",
		focus: []string{"quadriceps", "hamstrings", "glutes", "calves"},
		exercises: []exerciseDef{
			backSquat, romanianDeadlift, legPress,
			legCurl, legExtension, standingCalfRaise,
		},
	}
)

// Rigid templates with a fixed prescription per exercise.
var (
	upperA = dayDef{
		label: "Upper A", tag: "upper",
		focus: []string{"chest", "back", "shoulders", "arms"},
		exercises: []exerciseDef{
			benchPress.fixed(4, "6-8"), bentOverRow.fixed(4, "6-8"),
			overheadPress.fixed(3, "8-10"), latPulldown.fixed(3, "10-12"),
			barbellCurl.fixed(3, "10-12"), tricepPushdown.fixed(3, "10-12"),
		},
	}
	lowerA = dayDef{
		label: "Lower A", tag: "lower",
		focus: []string{"quadriceps", "hamstrings", "glutes", "calves"},
		exercises: []exerciseDef{
			backSquat.fixed(4, "6-8"), romanianDeadlift.fixed(3, "8-10"),
			walkingLunge.fixed(3, "10-12"), legCurl.fixed(3, "10-12"),
			standingCalfRaise.fixed(4, "12-15"), plank.fixed(3, "30-45s"),
		},
	}
	upperB = dayDef{
		label: "Upper B", tag: "upper",
		focus: []string{"back", "chest", "shoulders", "arms"},
		exercises: []exerciseDef{
			pullUp.fixed(4, "6-10"), inclineDumbbellPress.fixed(4, "8-10"),
			seatedCableRow.fixed(3, "10-12"), dumbbellShoulderPress.fixed(3, "10-12"),
			lateralRaise.fixed(3, "12-15"), hammerCurl.fixed(3, "10-12"),
			overheadTricepExtension.fixed(3, "10-12"),
		},
	}
	lowerB = dayDef{
		label: "Lower B", tag: "lower",
		focus: []string{"hamstrings", "glutes", "quadriceps", "calves"},
		exercises: []exerciseDef{
			deadlift.fixed(3, "4-6"), legPress.fixed(4, "10-12"),
			bulgarianSplitSquat.fixed(3, "8-10"), hipThrust.fixed(3, "8-12"),
			legExtension.fixed(3, "12-15"), seatedCalfRaise.fixed(4, "15-20"),
		},
	}

	chestDay = dayDef{
		label: "Chest", tag: "chest",
		focus: []string{"chest"},
		exercises: []exerciseDef{
			benchPress.fixed(4, "6-8"), inclineDumbbellPress.fixed(4, "8-10"),
			dips.fixed(3, "8-12"), cableFly.fixed(3, "12-15"), pushUp.fixed(2, "15-20"),
		},
	}
	backDay = dayDef{
		label: "Back", tag: "back",
		focus: []string{"lats", "upper back", "lower back"},
		exercises: []exerciseDef{
			deadlift.fixed(3, "4-6"), pullUp.fixed(4, "6-10"),
			bentOverRow.fixed(4, "8-10"), seatedCableRow.fixed(3, "10-12"),
			facePull.fixed(3, "15-20"),
		},
	}
	shoulderDay = dayDef{
		label: "Shoulders", tag: "shoulders",
		focus: []string{"shoulders", "rear delts", "traps"},
		exercises: []exerciseDef{
			overheadPress.fixed(4, "6-8"), dumbbellShoulderPress.fixed(3, "8-10"),
			lateralRaise.fixed(4, "12-15"), rearDeltFly.fixed(3, "12-15"),
			barbellShrug.fixed(3, "10-12"),
		},
	}
	legsDay5 = dayDef{
		label: "Legs", tag: "legs",
		focus: []string{"quadriceps", "hamstrings", "glutes", "calves"},
		exercises: []exerciseDef{
			backSquat.fixed(4, "6-8"), romanianDeadlift.fixed(3, "8-10"),
			legPress.fixed(3, "10-12"), legCurl.fixed(3, "10-12"),
			legExtension.fixed(3, "12-15"), standingCalfRaise.fixed(4, "12-15"),
		},
	}
	armsDay = dayDef{
		label: "Arms", tag: "arms",
		focus: []string{"biceps", "triceps", "forearms"},
		exercises: []exerciseDef{
			closeGripBench.fixed(4, "6-8"), barbellCurl.fixed(4, "8-10"),
			overheadTricepExtension.fixed(3, "10-12"), preacherCurl.fixed(3, "10-12"),
			tricepPushdown.fixed(3, "12-15"), hammerCurl.fixed(3, "12-15"),
		},
	}

	// The six-day split runs push/pull/legs twice; the second pass leans on
	// volume with different accessories.
	push6B = dayDef{
		label: "Push B", tag: "push",
		focus: []string{"shoulders", "chest", "triceps"},
		exercises: []exerciseDef{
			overheadPress.fixed(4, "6-8"), inclineDumbbellPress.fixed(4, "8-10"),
			dips.fixed(3, "8-12"), lateralRaise.fixed(4, "12-15"),
			cableFly.fixed(3, "12-15"), overheadTricepExtension.fixed(3, "10-12"),
		},
	}
	pull6B = dayDef{
		label: "Pull B", tag: "pull",
		focus: []string{"back", "biceps", "rear delts"},
		exercises: []exerciseDef{
			bentOverRow.fixed(4, "6-8"), latPulldown.fixed(4, "8-10"),
			seatedCableRow.fixed(3, "10-12"), rearDeltFly.fixed(3, "12-15"),
			preacherCurl.fixed(3, "10-12"), hammerCurl.fixed(3, "12-15"),
		},
	}
	legs6B = dayDef{
		label: "Legs B", tag: "legs",
		focus: []string{"hamstrings", "glutes", "quadriceps", "calves"},
		exercises: []exerciseDef{
			deadlift.fixed(3, "4-6"), bulgarianSplitSquat.fixed(3, "8-10"),
			hipThrust.fixed(3, "8-12"), legCurl.fixed(3, "10-12"),
			legExtension.fixed(3, "12-15"), seatedCalfRaise.fixed(4, "15-20"),
		},
	}
	push6A = dayDef{
		label: "Push A", tag: "push",
		focus: []string{"chest", "shoulders", "triceps"},
		exercises: []exerciseDef{
			benchPress.fixed(4, "6-8"), overheadPress.fixed(3, "8-10"),
			inclineDumbbellPress.fixed(3, "10-12"), lateralRaise.fixed(3, "12-15"),
			tricepPushdown.fixed(3, "10-12"),
		},
	}
	pull6A = dayDef{
		label: "Pull A", tag: "pull",
		focus: []string{"back", "biceps", "rear delts"},
		exercises: []exerciseDef{
			deadlift.fixed(3, "4-6"), pullUp.fixed(4, "6-10"),
			seatedCableRow.fixed(3, "10-12"), facePull.fixed(3, "15-20"),
			barbellCurl.fixed(3, "10-12"),
		},
	}
	legs6A = dayDef{
		label: "Legs A", tag: "legs",
		focus: []string{"quadriceps", "hamstrings", "glutes", "calves"},
		exercises: []exerciseDef{
			backSquat.fixed(4, "6-8"), romanianDeadlift.fixed(3, "8-10"),
			legPress.fixed(3, "10-12"), legCurl.fixed(3, "10-12"),
			standingCalfRaise.fixed(4, "12-15"),
		},
	}
)

// sportTemplate holds up to four days; plans take a prefix of them.
type sportTemplate struct {
	name      string
	rationale string
	days      [4]dayDef
}

var sportTemplates = map[string]sportTemplate{
	"running": {
		name: "Running Performance",
		rationale: "Runners need single-leg strength, hamstring resilience and calf capacity to tolerate " +
			"repetitive ground contact. Two strength days build force production while the interval and " +
			"tempo days develop the aerobic and lactate-threshold qualities that set race pace.",
		days: [4]dayDef{
			{label: "Lower Strength", tag: "strength", focus: []string{"quadriceps", "hamstrings", "glutes"},
				exercises: []exerciseDef{
					backSquat.fixed(4, "5-6"), romanianDeadlift.fixed(3, "6-8"),
					bulgarianSplitSquat.fixed(3, "8-10"), nordicCurl.fixed(3, "4-6"),
					standingCalfRaise.fixed(4, "12-15"),
				}},
			{label: "Intervals", tag: "conditioning", focus: []string{"cardiovascular", "calves"},
				exercises: []exerciseDef{
					trackIntervals.fixed(6, "400 m"), singleLegHop.fixed(3, "10 per leg"),
					plank.fixed(3, "45s"),
				}},
			{label: "Plyometrics & Core", tag: "power", focus: []string{"glutes", "calves", "core"},
				exercises: []exerciseDef{
					boxJump.fixed(4, "5"), stepUp.fixed(3, "10 per leg"),
					sidePlank.fixed(3, "30s per side"), deadBug.fixed(3, "10 per side"),
				}},
			{label: "Tempo Run", tag: "conditioning", focus: []string{"cardiovascular"},
				exercises: []exerciseDef{
					tempoRun.fixed(1, "20-30 min"), hipMobility.fixed(1, "10 min"),
				}},
		},
	},
	"cycling": {
		name: "Cycling Performance",
		rationale: "Cycling is quadriceps and glute dominant with little eccentric loading, so strength work " +
			"targets maximal leg force and posterior-chain balance. Interval and zone 2 rides build " +
			"the power at threshold and the aerobic base that endurance riding depends on.",
		days: [4]dayDef{
			{label: "Leg Strength", tag: "strength", focus: []string{"quadriceps", "glutes"},
				exercises: []exerciseDef{
					backSquat.fixed(4, "5-6"), legPress.fixed(3, "8-10"),
					bulgarianSplitSquat.fixed(3, "8-10"), hipThrust.fixed(3, "8-10"),
				}},
			{label: "Bike Intervals", tag: "conditioning", focus: []string{"cardiovascular", "quadriceps"},
				exercises: []exerciseDef{
					bikeIntervals.fixed(5, "3 min"), plank.fixed(3, "45s"),
				}},
			{label: "Posterior Chain & Core", tag: "strength", focus: []string{"hamstrings", "lower back", "core"},
				exercises: []exerciseDef{
					romanianDeadlift.fixed(3, "6-8"), seatedCableRow.fixed(3, "10-12"),
					gluteBridge.fixed(3, "12-15"), deadBug.fixed(3, "10 per side"),
				}},
			{label: "Endurance Ride", tag: "conditioning", focus: []string{"cardiovascular"},
				exercises: []exerciseDef{
					enduranceRide.fixed(1, "60-90 min"), hipMobility.fixed(1, "10 min"),
				}},
		},
	},
	"swimming": {
		name: "Swimming Performance",
		rationale: "Swimming loads the lats and shoulders through high repetition, so dry-land work builds " +
			"pulling strength while protecting the rotator cuff. Pool sets develop stroke-specific " +
			"endurance and the kick contributes hip and leg conditioning.",
		days: [4]dayDef{
			{label: "Pull Strength", tag: "strength", focus: []string{"lats", "upper back", "shoulders"},
				exercises: []exerciseDef{
					pullUp.fixed(4, "6-8"), latPulldown.fixed(3, "8-10"),
					seatedCableRow.fixed(3, "10-12"), bandExternalRotation.fixed(3, "15"),
					facePull.fixed(3, "15"),
				}},
			{label: "Pool Intervals", tag: "conditioning", focus: []string{"cardiovascular", "lats"},
				exercises: []exerciseDef{
					swimIntervals.fixed(8, "100 m"), kickSets.fixed(4, "50 m"),
				}},
			{label: "Legs & Core", tag: "strength", focus: []string{"quadriceps", "glutes", "core"},
				exercises: []exerciseDef{
					gobletSquat.fixed(3, "10-12"), boxJump.fixed(3, "5"),
					hangingLegRaise.fixed(3, "10-12"), pallofPress.fixed(3, "10 per side"),
				}},
			{label: "Shoulder Resilience", tag: "prehab", focus: []string{"rotator cuff", "shoulders"},
				exercises: []exerciseDef{
					pushUp.fixed(3, "10-15"), bandExternalRotation.fixed(3, "15"),
					rearDeltFly.fixed(3, "12-15"), sidePlank.fixed(3, "30s per side"),
				}},
		},
	},
	"basketball": {
		name: "Basketball Performance",
		rationale: "Basketball demands repeated jumping, cutting and landing, so the program pairs lower " +
			"body strength with plyometrics and change-of-direction work. Deceleration strength and " +
			"ankle-knee control reduce the landing injuries common to the sport.",
		days: [4]dayDef{
			{label: "Lower Strength", tag: "strength", focus: []string{"quadriceps", "glutes", "hamstrings"},
				exercises: []exerciseDef{
					backSquat.fixed(4, "5-6"), romanianDeadlift.fixed(3, "6-8"),
					walkingLunge.fixed(3, "8 per leg"), nordicCurl.fixed(3, "4-6"),
					standingCalfRaise.fixed(3, "12-15"),
				}},
			{label: "Jump & Agility", tag: "power", focus: []string{"calves", "glutes", "cardiovascular"},
				exercises: []exerciseDef{
					boxJump.fixed(4, "5"), lateralBound.fixed(3, "6 per side"),
					agilityLadder.fixed(4, "20s"), shuttleRun.fixed(6, "20 m"),
				}},
			{label: "Upper Strength", tag: "strength", focus: []string{"chest", "back", "shoulders"},
				exercises: []exerciseDef{
					benchPress.fixed(4, "6-8"), pullUp.fixed(3, "6-10"),
					dumbbellShoulderPress.fixed(3, "8-10"), pallofPress.fixed(3, "10 per side"),
				}},
			{label: "Power & Conditioning", tag: "power", focus: []string{"hamstrings", "glutes", "core"},
				exercises: []exerciseDef{
					powerClean.fixed(4, "3"), kettlebellSwing.fixed(3, "15"),
					sprintIntervals.fixed(6, "30 m"), hangingLegRaise.fixed(3, "10-12"),
				}},
		},
	},
	"soccer": {
		name: "Soccer Performance",
		rationale: "Soccer combines repeated sprints with an aerobic base, so the plan balances " +
			"sprint and change-of-direction conditioning with hamstring and adductor strength, the " +
			"most frequently strained muscles in the sport.",
		days: [4]dayDef{
			{label: "Lower Strength", tag: "strength", focus: []string{"hamstrings", "adductors", "quadriceps"},
				exercises: []exerciseDef{
					backSquat.fixed(4, "5-6"), nordicCurl.fixed(3, "4-6"),
					copenhagenPlank.fixed(3, "20s per side"), bulgarianSplitSquat.fixed(3, "8 per leg"),
				}},
			{label: "Speed & Agility", tag: "conditioning", focus: []string{"cardiovascular", "calves"},
				exercises: []exerciseDef{
					sprintIntervals.fixed(6, "30 m"), agilityLadder.fixed(4, "20s"),
					lateralBound.fixed(3, "6 per side"),
				}},
			{label: "Upper & Core", tag: "strength", focus: []string{"back", "chest", "core"},
				exercises: []exerciseDef{
					pullUp.fixed(3, "6-10"), pushUp.fixed(3, "12-15"),
					medBallThrow.fixed(3, "8 per side"), pallofPress.fixed(3, "10 per side"),
				}},
			{label: "Power & Conditioning", tag: "power", focus: []string{"glutes", "hamstrings", "cardiovascular"},
				exercises: []exerciseDef{
					powerClean.fixed(4, "3"), boxJump.fixed(3, "5"),
					shuttleRun.fixed(8, "20 m"), hipMobility.fixed(1, "10 min"),
				}},
		},
	},
}
