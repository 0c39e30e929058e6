package probe_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/okian/launchboard/internal/adapters/http/api"
	"github.com/okian/launchboard/internal/adapters/repository"
	service "github.com/okian/launchboard/internal/app"
	"github.com/okian/launchboard/internal/domain/model"
	"github.com/okian/launchboard/internal/domain/types"
	"github.com/okian/launchboard/internal/probe"
	"github.com/okian/launchboard/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func launches() []model.Launch {
	return []model.Launch{
		{FlightNumber: 1, Site: "CCAFS LC-40", PayloadMass: 0, Class: 0, BoosterVersion: "F9 v1.0  B0003"},
		{FlightNumber: 2, Site: "CCAFS LC-40", PayloadMass: 525, Class: 1, BoosterVersion: "F9 v1.0  B0004"},
		{FlightNumber: 3, Site: "VAFB SLC-4E", PayloadMass: 500, Class: 1, BoosterVersion: "F9 v1.1  B1003"},
		{FlightNumber: 4, Site: "KSC LC-39A", PayloadMass: 2500, Class: 1, BoosterVersion: "F9 FT B1021.1"},
		{FlightNumber: 5, Site: "KSC LC-39A", PayloadMass: 9600, Class: 0, BoosterVersion: "F9 B4 B1039.2"},
		{FlightNumber: 6, Site: "CCAFS SLC-40", PayloadMass: 3000, Class: 0, BoosterVersion: "F9 FT B1031.2"},
	}
}

func newServer(t *testing.T, wrap func(http.Handler) http.Handler) *httptest.Server {
	t.Helper()
	svc := service.New(service.WithDataset(repository.NewDataset(launches())))
	if err := svc.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	mux := http.NewServeMux()
	api.NewServer(svc, svc).Register(context.Background(), mux)

	var h http.Handler = mux
	if wrap != nil {
		h = wrap(mux)
	}
	return httptest.NewServer(h)
}

func config(url string) *probe.Config {
	return &probe.Config{BaseURL: url, Workers: 4, Timeout: 5 * time.Second}
}

func TestRun(t *testing.T) {
	Convey("Given a healthy launchboard service", t, func() {
		srv := newServer(t, nil)
		defer srv.Close()

		Convey("When probing it", func() {
			stats, err := probe.Run(context.Background(), config(srv.URL))

			Convey("Then every check should pass", func() {
				So(err, ShouldBeNil)
				So(stats.Violations, ShouldEqual, 0)
				So(stats.Failed, ShouldEqual, 0)
				So(stats.Cases, ShouldBeGreaterThan, 5*2)
				So(stats.Requests, ShouldBeGreaterThan, int64(stats.Cases))
			})
		})
	})

	Convey("Given a service whose ALL distribution drops a site", t, func() {
		srv := newServer(t, func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path == "/api/distribution" && r.URL.Query().Get("site") == model.AllSites {
					w.Header().Set("Content-Type", "application/json")
					_ = json.NewEncoder(w).Encode(types.DistributionView{
						Site:   model.AllSites,
						Slices: []types.Slice{{Label: "CCAFS LC-40", Value: 1}},
					})
					return
				}
				next.ServeHTTP(w, r)
			})
		})
		defer srv.Close()

		Convey("Then the probe should report violations", func() {
			stats, err := probe.Run(context.Background(), config(srv.URL))
			So(errors.Is(err, probe.ErrViolations), ShouldBeTrue)
			So(stats.Violations, ShouldBeGreaterThan, 0)
		})
	})

	Convey("Given a service that ignores inverted windows", t, func() {
		srv := newServer(t, func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				q := r.URL.Query()
				if r.URL.Path == "/api/correlation" && q.Get("min") == "9600" && q.Get("max") == "0" {
					q.Set("min", "0")
					q.Set("max", "9600")
					r.URL.RawQuery = q.Encode()
				}
				next.ServeHTTP(w, r)
			})
		})
		defer srv.Close()

		Convey("Then the probe should report violations", func() {
			_, err := probe.Run(context.Background(), config(srv.URL))
			So(errors.Is(err, probe.ErrViolations), ShouldBeTrue)
		})
	})

	Convey("Given an unreachable service", t, func() {
		srv := newServer(t, nil)
		url := srv.URL
		srv.Close()

		Convey("Then the probe should fail the health check", func() {
			_, err := probe.Run(context.Background(), config(url))
			So(errors.Is(err, probe.ErrUnhealthy), ShouldBeTrue)
		})
	})
}
