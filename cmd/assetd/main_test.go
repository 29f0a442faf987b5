package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/okian/assetlens/internal/adapters/repository"
	"github.com/okian/assetlens/internal/config"
	"github.com/okian/assetlens/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func TestBuildStore(t *testing.T) {
	convey.Convey("Given the default configuration with one detail set", t, func() {
		ctx := context.Background()
		cfg := config.New(ctx)
		cfg.Details = map[string]config.Asset{
			"活钱管理": {Items: []config.AssetItem{{Name: "货币基金", Value: 30000}}},
		}

		store, err := buildStore(ctx, cfg)
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("Then both kinds should be seeded", func() {
			items, err := store.Get(ctx, repository.KindDistribution, "asset")
			convey.So(err, convey.ShouldBeNil)
			convey.So(items, convey.ShouldHaveLength, 4)

			detail, err := store.Get(ctx, repository.KindDetail, "活钱管理")
			convey.So(err, convey.ShouldBeNil)
			convey.So(detail, convey.ShouldResemble, []repository.Item{{Name: "货币基金", Value: 30000}})
		})
	})

	convey.Convey("Given a configuration with a blank set name", t, func() {
		cfg := config.New(context.Background())
		cfg.Details = map[string]config.Asset{"": {}}

		_, err := buildStore(context.Background(), cfg)
		convey.So(errors.Is(err, repository.ErrInvalidName), convey.ShouldBeTrue)
	})
}

func TestNewHandler(t *testing.T) {
	convey.Convey("Given a handler built from the default configuration", t, func() {
		ctx := context.Background()
		h, err := newHandler(ctx, config.New(ctx), logger.Nop())
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("When requesting every distribution route", func() {
			for _, path := range []string{"/asset/distribution", "/asset/distribution2", "/asset/distribution3"} {
				w := httptest.NewRecorder()
				h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, http.NoBody))

				var body struct {
					Success bool `json:"success"`
					Data    struct {
						Total float64 `json:"total"`
					} `json:"data"`
				}
				convey.So(json.Unmarshal(w.Body.Bytes(), &body), convey.ShouldBeNil)

				// Unconfigured asset2/asset3 fall back to the default set.
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(body.Success, convey.ShouldBeTrue)
				convey.So(body.Data.Total, convey.ShouldEqual, 352000)
			}
		})

		convey.Convey("When requesting an unconfigured detail", func() {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/asset/distributionDetail?itemName=x", http.NoBody))
			convey.So(w.Code, convey.ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestUpdateSystemMetrics(t *testing.T) {
	convey.Convey("Updating system metrics should not panic", t, func() {
		convey.So(updateSystemMetrics, convey.ShouldNotPanic)
	})
}
