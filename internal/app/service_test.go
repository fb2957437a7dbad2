package service_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	service "github.com/paddocklab/gridboss/internal/app"
	"github.com/paddocklab/gridboss/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

// buildDataset writes a small but complete dataset: three circuits whose DNF
// rates spread across the tier thresholds, four drivers racing everywhere.
func buildDataset(t *testing.T) string {
	t.Helper()

	type driverDef struct {
		name string
		dob  string
		nat  string
		team string
	}
	drivers := []driverDef{
		{"Driver A", "1970-03-01", "British", "Team Red"},
		{"Driver B", "1968-07-15", "German", "Team Red"},
		{"Driver C", "1972-11-30", "French", "Team Blue"},
		{"Driver D", "1960-01-10", "Italian", "Team Blue"},
	}
	// Grid positions per driver; A starts last and wins, B loses one spot.
	grids := map[string]int{"Driver A": 4, "Driver B": 1, "Driver C": 2, "Driver D": 3}
	points := []float64{10, 6, 4, 3}

	lines := "race_id,race_name,year,race_date,circuit_name,driver,driver_dob,driver_nationality,constructor_name,grid_starting_position,final_position,status,points\n"
	raceNum := 0
	for _, circuit := range []struct {
		name string
		dnfs int // drivers that retire per race, from the back of the list
	}{
		{"Monza", 0},
		{"Suzuka", 1},
		{"Monaco", 2},
	} {
		for r := 0; r < 4; r++ {
			raceNum++
			raceID := fmt.Sprintf("race-%03d", raceNum)
			date := fmt.Sprintf("1995-%02d-01", raceNum)
			pos := 0
			for di, d := range drivers {
				final := ""
				status := "Engine"
				pts := 0.0
				if di < len(drivers)-circuit.dnfs {
					pos++
					final = fmt.Sprintf("%d", pos)
					status = "Finished"
					pts = points[pos-1]
				}
				lines += fmt.Sprintf("%s,%s GP,1995,%s,%s,%s,%s,%s,%s,%d,%s,%s,%g\n",
					raceID, circuit.name, date, circuit.name,
					d.name, d.dob, d.nat, d.team, grids[d.name], final, status, pts)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "f1_data.csv")
	if err := os.WriteFile(path, []byte(lines), 0o600); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	return path
}

func TestService_Pipeline(t *testing.T) {
	_ = logger.Init()
	ctx := context.Background()

	Convey("Given a service over a complete dataset", t, func() {
		svc := service.New(
			service.WithDataPath(buildDataset(t)),
			service.WithMinHardRaces(3),
			service.WithMinCareerRaces(10),
		)
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When the circuit table is read", func() {
			circuits, err := svc.Circuits(ctx)
			So(err, ShouldBeNil)

			Convey("Then the three circuits span the three tiers", func() {
				So(circuits, ShouldHaveLength, 3)
				byName := map[string]string{}
				for _, c := range circuits {
					byName[c.Circuit] = c.Difficulty
				}
				So(byName["Monza"], ShouldEqual, "Easy")
				So(byName["Suzuka"], ShouldEqual, "Medium")
				So(byName["Monaco"], ShouldEqual, "Hard")
			})

			Convey("And races count distinct race ids", func() {
				for _, c := range circuits {
					So(c.Races, ShouldEqual, 4)
					So(c.Entries, ShouldEqual, 16)
				}
			})
		})

		Convey("When the driver table is read", func() {
			drivers, err := svc.Drivers(ctx)
			So(err, ShouldBeNil)

			Convey("Then every driver has a career row", func() {
				So(drivers, ShouldHaveLength, 4)
				for _, d := range drivers {
					So(d.Races, ShouldEqual, 12)
				}
			})

			Convey("And the always-finishing winner has the top rates", func() {
				for _, d := range drivers {
					if d.Driver == "Driver A" {
						So(d.FinishRate, ShouldEqual, 1.0)
						So(d.Wins, ShouldEqual, 12)
						So(d.PPRHard, ShouldNotBeNil)
						So(*d.PPRHard, ShouldAlmostEqual, 10.0)
					}
				}
			})
		})

		Convey("When the ranking is read", func() {
			candidates, err := svc.TopN(ctx, 10)
			So(err, ShouldBeNil)

			Convey("Then every driver qualifies and the winner ranks first", func() {
				So(candidates, ShouldHaveLength, 4)
				So(candidates[0].Driver, ShouldEqual, "Driver A")
				So(candidates[0].Rank, ShouldEqual, 1)
			})

			Convey("And scores stay within [0, 1] in rank order", func() {
				for i, c := range candidates {
					So(c.Score, ShouldBeGreaterThanOrEqualTo, 0)
					So(c.Score, ShouldBeLessThanOrEqualTo, 1)
					if i > 0 {
						So(c.Score, ShouldBeLessThanOrEqualTo, candidates[i-1].Score)
					}
				}
			})
		})

		Convey("When one driver's rank is looked up", func() {
			candidate, err := svc.CandidateRank(ctx, "Driver A")

			Convey("Then the ranked row comes back", func() {
				So(err, ShouldBeNil)
				So(candidate.Rank, ShouldEqual, 1)
			})
		})

		Convey("When an unknown driver is looked up", func() {
			_, err := svc.CandidateRank(ctx, "Nobody")

			Convey("Then the not-found kind is returned", func() {
				So(err, ShouldEqual, service.ErrNotFound)
			})
		})

		Convey("When the constructor table is read", func() {
			constructors, err := svc.Constructors(ctx)
			So(err, ShouldBeNil)

			Convey("Then both teams have rows with consistent tank scores", func() {
				So(constructors, ShouldHaveLength, 2)
				for _, c := range constructors {
					So(c.TankScore, ShouldAlmostEqual, c.PointsPerRace*c.FinishRate)
				}
			})
		})

		Convey("When the tier splits are read", func() {
			splits, err := svc.DriverTierSplits(ctx)
			So(err, ShouldBeNil)

			Convey("Then each driver compares easy against hard", func() {
				So(splits, ShouldHaveLength, 4)
				for _, s := range splits {
					So(s.EasyRaces, ShouldEqual, 4)
					So(s.HardRaces, ShouldEqual, 4)
				}
			})
		})

		Convey("When the nationality table is read", func() {
			nationalities, err := svc.Nationalities(ctx)
			So(err, ShouldBeNil)

			Convey("Then each nationality has one driver here", func() {
				So(nationalities, ShouldHaveLength, 4)
				for _, n := range nationalities {
					So(n.Drivers, ShouldEqual, 1)
					So(n.Races, ShouldEqual, 12)
				}
			})
		})

		Convey("When the age curve is read", func() {
			buckets, err := svc.AgeCurve(ctx)
			So(err, ShouldBeNil)

			Convey("Then the drivers' 1995 ages populate the expected buckets", func() {
				labels := map[string]bool{}
				for _, b := range buckets {
					labels[b.Bucket] = true
				}
				// Ages in 1995: A 25, B 26, C 22, D 35.
				So(labels["25-30"], ShouldBeTrue)
				So(labels["22-25"], ShouldBeTrue)
				So(labels["35-40"], ShouldBeTrue)
			})
		})

		Convey("When stats are read", func() {
			stats := svc.GetStats()

			Convey("Then the table sizes are reported", func() {
				So(stats["started"], ShouldBeTrue)
				So(stats["rows"], ShouldEqual, 48)
				So(stats["circuits"], ShouldEqual, 3)
				So(stats["drivers"], ShouldEqual, 4)
				So(stats["candidates"], ShouldEqual, 4)
			})
		})

		Convey("When the dataset is reloaded", func() {
			err := svc.Reload(ctx)

			Convey("Then the snapshot is rebuilt from the same file", func() {
				So(err, ShouldBeNil)
				candidates, err := svc.TopN(ctx, 10)
				So(err, ShouldBeNil)
				So(candidates, ShouldHaveLength, 4)
			})
		})

		Convey("When starting an already started service", func() {
			Convey("Then the second start is a no-op", func() {
				So(svc.Start(ctx), ShouldBeNil)
			})
		})
	})

	Convey("Given a service that was never started", t, func() {
		svc := service.New(service.WithLogger(logger.Get()))

		Convey("When reads and reloads are attempted", func() {
			_, readErr := svc.Drivers(ctx)
			reloadErr := svc.Reload(ctx)

			Convey("Then both fail with the not-started kind", func() {
				So(readErr, ShouldEqual, service.ErrNotStarted)
				So(reloadErr, ShouldEqual, service.ErrNotStarted)
			})
		})
	})

	Convey("Given a service pointed at a missing dataset", t, func() {
		svc := service.New(service.WithDataPath(filepath.Join(t.TempDir(), "absent.csv")))

		Convey("When it starts", func() {
			err := svc.Start(ctx)

			Convey("Then startup fails", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}
