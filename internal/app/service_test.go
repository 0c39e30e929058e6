package service_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/launchboard/internal/adapters/render"
	"github.com/okian/launchboard/internal/adapters/repository"
	service "github.com/okian/launchboard/internal/app"
	"github.com/okian/launchboard/internal/domain/model"
	"github.com/okian/launchboard/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

const sampleCSV = `Flight Number,Launch Site,class,Payload Mass (kg),Booster Version,Booster Version Category
1,CCAFS LC-40,0,0,F9 v1.0  B0003,v1.0
2,CCAFS LC-40,1,525,F9 v1.0  B0004,v1.0
3,VAFB SLC-4E,1,500,F9 v1.1  B1003,v1.1
4,KSC LC-39A,1,2500,F9 FT B1021.1,FT
5,KSC LC-39A,0,9600,F9 B4 B1039.2,B4
`

func sampleDataset() *repository.Dataset {
	return repository.NewDataset([]model.Launch{
		{Site: "A", PayloadMass: 100, Class: 1, BoosterVersion: "v1"},
		{Site: "A", PayloadMass: 200, Class: 0, BoosterVersion: "v1"},
		{Site: "B", PayloadMass: 300, Class: 1, BoosterVersion: "v2"},
	})
}

func startedService(opts ...service.Option) *service.Service {
	opts = append([]service.Option{service.WithDataset(sampleDataset())}, opts...)
	svc := service.New(opts...)
	So(svc.Start(context.Background()), ShouldBeNil)
	return svc
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should not be started", func() {
			So(svc, ShouldNotBeNil)
			So(svc.GetStats()["started"], ShouldBeFalse)
			So(svc.GetStats()["dataPath"], ShouldEqual, "spacex_launch_dash.csv")
		})
	})

	Convey("Given a new service with custom options", t, func() {
		svc := service.New(
			service.WithDataPath("launches.csv"),
			service.WithSliderStep(500),
			service.WithColorBy(render.ByBoosterCategory),
			service.WithChartSize(640, 320),
			service.WithLogger(logger.Named("test")),
		)

		Convey("Then it should carry the configuration", func() {
			stats := svc.GetStats()
			So(stats["dataPath"], ShouldEqual, "launches.csv")
			So(stats["sliderStep"], ShouldEqual, 500.0)
		})
	})
}

func TestService_Start(t *testing.T) {
	Convey("Given a data file on disk", t, func() {
		path := filepath.Join(t.TempDir(), "launches.csv")
		So(os.WriteFile(path, []byte(sampleCSV), 0o600), ShouldBeNil)
		svc := service.New(service.WithDataPath(path))
		defer svc.Stop()

		Convey("When starting the service", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			err := svc.Start(ctx)

			Convey("Then it should load the table", func() {
				So(err, ShouldBeNil)
				stats := svc.GetStats()
				So(stats["started"], ShouldBeTrue)
				So(stats["records"], ShouldEqual, 5)
				So(stats["sites"], ShouldResemble, []string{"CCAFS LC-40", "VAFB SLC-4E", "KSC LC-39A"})
				So(stats["payloadMin"], ShouldEqual, 0.0)
				So(stats["payloadMax"], ShouldEqual, 9600.0)
			})

			Convey("And starting again should be a no-op", func() {
				So(svc.Start(ctx), ShouldBeNil)
			})
		})
	})

	Convey("Given a missing data file", t, func() {
		svc := service.New(service.WithDataPath(filepath.Join(t.TempDir(), "missing.csv")))

		Convey("Then Start should fail with a data file error", func() {
			err := svc.Start(context.Background())
			So(err, ShouldNotBeNil)
			So(errors.Is(err, repository.ErrDataFile), ShouldBeTrue)
			So(svc.GetStats()["started"], ShouldBeFalse)
		})
	})
}

func TestService_Stop(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := startedService()

		Convey("When stopping it twice", func() {
			svc.Stop()
			svc.Stop()

			Convey("Then views should report not started", func() {
				_, err := svc.Controls(context.Background())
				So(err, ShouldEqual, service.ErrNotStarted)
				So(svc.GetStats()["started"], ShouldBeFalse)
			})
		})
	})
}

func TestService_NotStarted(t *testing.T) {
	Convey("Given a service that was never started", t, func() {
		svc := service.New()
		ctx := context.Background()

		Convey("Then every view should return ErrNotStarted", func() {
			_, err := svc.Controls(ctx)
			So(err, ShouldEqual, service.ErrNotStarted)
			_, err = svc.Bounds(ctx)
			So(err, ShouldEqual, service.ErrNotStarted)
			_, err = svc.Distribution(ctx, model.AllSites)
			So(err, ShouldEqual, service.ErrNotStarted)
			_, err = svc.Correlation(ctx, model.AllSites, 0, 1)
			So(err, ShouldEqual, service.ErrNotStarted)
			So(svc.RenderDistribution(ctx, &bytes.Buffer{}, model.AllSites, render.SVG), ShouldEqual, service.ErrNotStarted)
			So(svc.RenderCorrelation(ctx, &bytes.Buffer{}, model.AllSites, 0, 1, render.SVG), ShouldEqual, service.ErrNotStarted)
		})
	})
}

func TestService_Views(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := startedService()
		defer svc.Stop()
		ctx := context.Background()

		Convey("Controls should list every site after the sentinel", func() {
			cs, err := svc.Controls(ctx)
			So(err, ShouldBeNil)
			So(cs.DefaultSite, ShouldEqual, model.AllSites)
			So(len(cs.Sites), ShouldEqual, 3)
			So(cs.Sites[0].Value, ShouldEqual, model.AllSites)
			So(cs.Payload.Min, ShouldEqual, 100.0)
			So(cs.Payload.Max, ShouldEqual, 300.0)
		})

		Convey("Bounds should match the table", func() {
			b, err := svc.Bounds(ctx)
			So(err, ShouldBeNil)
			So(b, ShouldResemble, model.Bounds{Min: 100, Max: 300})
		})

		Convey("Distribution for ALL should sum successes per site", func() {
			view, err := svc.Distribution(ctx, model.AllSites)
			So(err, ShouldBeNil)
			So(view.Site, ShouldEqual, model.AllSites)
			So(view.Title, ShouldEqual, "Total Successful Launches by Sites")
			So(len(view.Slices), ShouldEqual, 2)
			So(view.Slices[0].Label, ShouldEqual, "A")
			So(view.Slices[0].Value, ShouldEqual, 1.0)
		})

		Convey("Distribution for an unknown site should be empty", func() {
			view, err := svc.Distribution(ctx, "Z")
			So(err, ShouldBeNil)
			So(view.Slices, ShouldNotBeNil)
			So(view.Slices, ShouldBeEmpty)
		})

		Convey("Correlation should filter by site and window", func() {
			view, err := svc.Correlation(ctx, "A", 150, 300)
			So(err, ShouldBeNil)
			So(view.Min, ShouldEqual, 150.0)
			So(view.Max, ShouldEqual, 300.0)
			So(len(view.Launches), ShouldEqual, 1)
			So(view.Launches[0].PayloadMass, ShouldEqual, 200.0)
		})

		Convey("Correlation with an inverted window should be empty", func() {
			view, err := svc.Correlation(ctx, model.AllSites, 300, 100)
			So(err, ShouldBeNil)
			So(view.Launches, ShouldBeEmpty)
		})
	})
}

func TestService_Render(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := startedService(service.WithChartSize(400, 300))
		defer svc.Stop()
		ctx := context.Background()

		Convey("RenderDistribution should write an SVG document", func() {
			var buf bytes.Buffer
			So(svc.RenderDistribution(ctx, &buf, model.AllSites, render.SVG), ShouldBeNil)
			So(buf.String(), ShouldContainSubstring, "<svg")
		})

		Convey("RenderCorrelation should write a PNG image", func() {
			var buf bytes.Buffer
			So(svc.RenderCorrelation(ctx, &buf, model.AllSites, 0, 1000, render.PNG), ShouldBeNil)
			So(buf.Len(), ShouldBeGreaterThan, 8)
			So(buf.Bytes()[1:4], ShouldResemble, []byte("PNG"))
		})

		Convey("Empty views should report no data", func() {
			So(svc.RenderDistribution(ctx, &bytes.Buffer{}, "Z", render.SVG), ShouldEqual, render.ErrNoData)
			So(svc.RenderCorrelation(ctx, &bytes.Buffer{}, model.AllSites, 5000, 6000, render.SVG), ShouldEqual, render.ErrNoData)
		})
	})
}
