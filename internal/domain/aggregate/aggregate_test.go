package aggregate_test

import (
	"testing"

	aggregate "github.com/paddocklab/gridboss/internal/domain/aggregate"
	"github.com/paddocklab/gridboss/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

// entry builds a finished classified row with the essentials filled in.
func entry(driver, constructor string, points float64, finished bool) model.RaceEntry {
	e := model.RaceEntry{
		Driver:      driver,
		Constructor: constructor,
		Points:      points,
		Finished:    finished,
		Season:      2000,
	}
	if finished {
		e.StatusCategory = model.StatusFinished
		e.FinalPosition = intPtr(5)
		e.PositionDelta = floatPtr(1)
	} else {
		e.StatusCategory = model.StatusOtherDNF
	}
	return e
}

func TestDrivers(t *testing.T) {
	Convey("Given a driver's race entries", t, func() {
		rows := []model.RaceEntry{}
		for i := 0; i < 8; i++ {
			e := entry("Driver A", "Team X", 10, true)
			e.Difficulty = model.TierHard
			rows = append(rows, e)
		}
		for i := 0; i < 2; i++ {
			rows = append(rows, entry("Driver A", "Team X", 0, false))
		}
		win := entry("Driver A", "Team X", 25, true)
		win.FinalPosition = intPtr(1)
		rows = append(rows, win)

		Convey("When drivers are aggregated with a hard-race floor of 5", func() {
			drivers := aggregate.Drivers(rows, 5)

			Convey("Then the career means come out over all entries", func() {
				So(drivers, ShouldHaveLength, 1)
				d := drivers[0]
				So(d.Races, ShouldEqual, 11)
				So(d.PointsPerRace, ShouldAlmostEqual, 105.0/11.0)
				So(d.FinishRate, ShouldAlmostEqual, 9.0/11.0)
				So(d.Wins, ShouldEqual, 1)
				So(d.WinRate, ShouldAlmostEqual, 1.0/11.0)
			})

			Convey("And the hard-tier mean covers only hard-tier entries", func() {
				So(drivers[0].PPRHard, ShouldNotBeNil)
				So(*drivers[0].PPRHard, ShouldAlmostEqual, 10.0)
			})
		})

		Convey("When the hard-race floor is above the driver's hard count", func() {
			drivers := aggregate.Drivers(rows, 10)

			Convey("Then the hard-tier mean stays undefined", func() {
				So(drivers[0].PPRHard, ShouldBeNil)
			})
		})
	})

	Convey("Given a driver with no classified results at all", t, func() {
		rows := []model.RaceEntry{
			entry("Driver B", "Team Y", 0, false),
			entry("Driver B", "Team Y", 0, false),
		}

		Convey("When drivers are aggregated", func() {
			drivers := aggregate.Drivers(rows, 1)

			Convey("Then the position-delta mean is undefined rather than zero", func() {
				So(drivers[0].AvgPositionDelta, ShouldBeNil)
			})
		})
	})
}

func TestDriverTierSplits(t *testing.T) {
	Convey("Given drivers with entries on both tiers and on one", t, func() {
		rows := []model.RaceEntry{}
		for i := 0; i < 4; i++ {
			e := entry("Both Tiers", "Team X", 12, true)
			e.Difficulty = model.TierEasy
			rows = append(rows, e)
		}
		for i := 0; i < 4; i++ {
			e := entry("Both Tiers", "Team X", 6, true)
			e.Difficulty = model.TierHard
			rows = append(rows, e)
		}
		for i := 0; i < 4; i++ {
			e := entry("Easy Only", "Team Y", 8, true)
			e.Difficulty = model.TierEasy
			rows = append(rows, e)
		}
		mediumRow := entry("Both Tiers", "Team X", 99, true)
		mediumRow.Difficulty = model.TierMedium
		rows = append(rows, mediumRow)

		Convey("When tier splits are computed", func() {
			splits := aggregate.DriverTierSplits(rows)

			Convey("Then only the driver present on both tiers has a row", func() {
				So(splits, ShouldHaveLength, 1)
				So(splits[0].Name, ShouldEqual, "Both Tiers")
			})

			Convey("And medium-tier entries are ignored entirely", func() {
				So(splits[0].EasyRaces, ShouldEqual, 4)
				So(splits[0].HardRaces, ShouldEqual, 4)
				So(splits[0].EasyPPR, ShouldAlmostEqual, 12.0)
				So(splits[0].HardPPR, ShouldAlmostEqual, 6.0)
			})

			Convey("And the hard ratio divides hard by easy", func() {
				So(splits[0].HardRatio, ShouldNotBeNil)
				So(*splits[0].HardRatio, ShouldAlmostEqual, 0.5)
			})
		})
	})

	Convey("Given a driver who scores nothing on easy circuits", t, func() {
		rows := []model.RaceEntry{}
		easy := entry("Pointless", "Team Z", 0, true)
		easy.Difficulty = model.TierEasy
		hard := entry("Pointless", "Team Z", 4, true)
		hard.Difficulty = model.TierHard
		rows = append(rows, easy, hard)

		Convey("When tier splits are computed", func() {
			splits := aggregate.DriverTierSplits(rows)

			Convey("Then the ratio is undefined instead of infinite", func() {
				So(splits, ShouldHaveLength, 1)
				So(splits[0].HardRatio, ShouldBeNil)
			})
		})
	})
}

func TestConstructors(t *testing.T) {
	Convey("Given a constructor's season", t, func() {
		rows := []model.RaceEntry{}
		for i := 0; i < 8; i++ {
			rows = append(rows, entry("D1", "Reliable Racing", 5, true))
		}
		mech := entry("D1", "Reliable Racing", 0, false)
		mech.StatusCategory = model.StatusMechanicalDNF
		crash := entry("D2", "Reliable Racing", 0, false)
		crash.StatusCategory = model.StatusAccident
		rows = append(rows, mech, crash)

		Convey("When constructors are aggregated", func() {
			constructors := aggregate.Constructors(rows)

			Convey("Then rates come out over all entries", func() {
				So(constructors, ShouldHaveLength, 1)
				c := constructors[0]
				So(c.Races, ShouldEqual, 10)
				So(c.PointsPerRace, ShouldAlmostEqual, 4.0)
				So(c.FinishRate, ShouldAlmostEqual, 0.8)
				So(c.MechDNFRate, ShouldAlmostEqual, 0.1)
			})

			Convey("And the tank score is points per race weighted by finish rate", func() {
				So(constructors[0].TankScore, ShouldAlmostEqual, 4.0*0.8)
			})
		})
	})

	Convey("Given a constructor with 5.0 points per race and an 80% finish rate", t, func() {
		rows := []model.RaceEntry{}
		for i := 0; i < 8; i++ {
			rows = append(rows, entry("D1", "Tank Co", 6.25, true))
		}
		rows = append(rows, entry("D1", "Tank Co", 0, false), entry("D1", "Tank Co", 0, false))

		Convey("When constructors are aggregated", func() {
			constructors := aggregate.Constructors(rows)

			Convey("Then the tank score is 4.0", func() {
				So(constructors[0].PointsPerRace, ShouldAlmostEqual, 5.0)
				So(constructors[0].FinishRate, ShouldAlmostEqual, 0.8)
				So(constructors[0].TankScore, ShouldAlmostEqual, 4.0)
			})
		})
	})
}

func TestNationalities(t *testing.T) {
	Convey("Given two nationalities in cars of different quality", t, func() {
		rows := []model.RaceEntry{}
		// Fast car: constructor season mean 10. The Dutch driver scores at
		// the car's level, the British driver doubles it in a slow car.
		for i := 0; i < 4; i++ {
			e := entry("Dutch Driver", "Fast Car", 10, true)
			e.DriverNationality = "Dutch"
			rows = append(rows, e)
		}
		for i := 0; i < 4; i++ {
			e := entry("British Driver", "Slow Car", 4, true)
			e.DriverNationality = "British"
			rows = append(rows, e)
		}
		for i := 0; i < 4; i++ {
			e := entry("Slow Teammate", "Slow Car", 0, true)
			e.DriverNationality = "German"
			rows = append(rows, e)
		}

		Convey("When nationalities are aggregated", func() {
			nationalities := aggregate.Nationalities(rows)

			Convey("Then each nationality counts its drivers and races", func() {
				So(nationalities, ShouldHaveLength, 3)
				for _, n := range nationalities {
					So(n.Races, ShouldEqual, 4)
					So(n.Drivers, ShouldEqual, 1)
				}
			})

			Convey("And normalization rewards beating the car, not the car", func() {
				byName := map[string]float64{}
				for _, n := range nationalities {
					So(n.AvgNormalizedPoints, ShouldNotBeNil)
					byName[n.Nationality] = *n.AvgNormalizedPoints
				}
				// Slow Car season mean is 2: the British driver lands at 2.0
				// while the Dutch driver in the dominant car sits at 1.0.
				So(byName["British"], ShouldAlmostEqual, 2.0)
				So(byName["Dutch"], ShouldAlmostEqual, 1.0)
			})
		})
	})

	Convey("Given a nationality whose constructor never scored", t, func() {
		rows := []model.RaceEntry{}
		for i := 0; i < 3; i++ {
			e := entry("Backmarker", "Zero Points GP", 0, true)
			e.DriverNationality = "Belgian"
			rows = append(rows, e)
		}

		Convey("When nationalities are aggregated", func() {
			nationalities := aggregate.Nationalities(rows)

			Convey("Then the normalized mean is undefined", func() {
				So(nationalities[0].AvgNormalizedPoints, ShouldBeNil)
				So(nationalities[0].AvgPoints, ShouldEqual, 0)
			})
		})
	})
}

func TestAgeBuckets(t *testing.T) {
	Convey("Given entries with derived ages across the buckets", t, func() {
		rows := []model.RaceEntry{}
		addAt := func(age float64, points float64, win bool) {
			e := entry("Driver", "Team", points, true)
			e.AgeYears = floatPtr(age)
			if win {
				e.FinalPosition = intPtr(1)
			}
			rows = append(rows, e)
		}
		addAt(19.5, 2, false)
		addAt(23.0, 8, false)
		addAt(27.5, 18, true)
		addAt(28.0, 12, false)
		addAt(44.0, 1, false)

		Convey("When age buckets are aggregated", func() {
			buckets := aggregate.AgeBuckets(rows)

			Convey("Then populated buckets come back in bucket order", func() {
				labels := make([]string, 0, len(buckets))
				for _, b := range buckets {
					labels = append(labels, b.Bucket)
				}
				So(labels, ShouldResemble, []string{"18-22", "22-25", "25-30", "40+"})
			})

			Convey("And the 25-30 bucket aggregates both rows", func() {
				for _, b := range buckets {
					if b.Bucket == "25-30" {
						So(b.Races, ShouldEqual, 2)
						So(b.AvgPoints, ShouldAlmostEqual, 15.0)
						So(b.Wins, ShouldEqual, 1)
						So(b.WinRate, ShouldAlmostEqual, 0.5)
					}
				}
			})
		})
	})

	Convey("Given rows with missing or underage derived ages", t, func() {
		rows := []model.RaceEntry{
			entry("No DOB", "Team", 5, true),
		}
		young := entry("Karter", "Team", 5, true)
		young.AgeYears = floatPtr(16.0)
		rows = append(rows, young)

		Convey("When age buckets are aggregated", func() {
			buckets := aggregate.AgeBuckets(rows)

			Convey("Then neither row lands in any bucket", func() {
				So(buckets, ShouldBeEmpty)
			})
		})
	})
}
