package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/okian/assetlens/internal/asset"
	"github.com/okian/assetlens/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

const okBody = `{"success":true,"data":{"total":400,"items":[{"name":"活钱管理","value":100},{"name":"稳健理财","value":300}],"timestamp":1700000000},"msg":"查询成功"}`

func newBackend(paths *[]string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*paths = append(*paths, r.URL.RequestURI())
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(okBody))
	}))
}

func run(out io.Writer, args ...string) error {
	return newApp(out).Run(append([]string{"assetctl"}, args...))
}

func TestAssetctl(t *testing.T) {
	if err := logger.Init(logger.WithOutput(io.Discard)); err != nil {
		t.Fatal(err)
	}

	convey.Convey("Given a backend serving a distribution", t, func() {
		var paths []string
		srv := newBackend(&paths)
		defer srv.Close()
		var out bytes.Buffer

		convey.Convey("When printing set 2", func() {
			err := run(&out, "--base-url", srv.URL, "distribution", "--set", "2")

			convey.Convey("Then the decoded distribution should be printed", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(paths, convey.ShouldResemble, []string{"/asset/distribution2"})
				var d asset.Distribution
				convey.So(json.Unmarshal(out.Bytes(), &d), convey.ShouldBeNil)
				convey.So(d.Total, convey.ShouldEqual, 400)
			})
		})

		convey.Convey("When printing a detail", func() {
			err := run(&out, "--base-url", srv.URL, "detail", "活钱管理")
			convey.So(err, convey.ShouldBeNil)
			convey.So(paths, convey.ShouldResemble, []string{"/asset/distributionDetail?itemName=%E6%B4%BB%E9%92%B1%E7%AE%A1%E7%90%86"})
		})

		convey.Convey("When detail is missing its argument", func() {
			err := run(&out, "--base-url", srv.URL, "detail")
			convey.So(errors.Is(err, ErrUsage), convey.ShouldBeTrue)
			convey.So(paths, convey.ShouldBeEmpty)
		})

		convey.Convey("When the set is out of range", func() {
			err := run(&out, "--base-url", srv.URL, "distribution", "--set", "4")
			convey.So(errors.Is(err, ErrUsage), convey.ShouldBeTrue)
		})

		convey.Convey("When rendering a dark chart", func() {
			path := filepath.Join(t.TempDir(), "chart.png")
			err := run(&out, "--base-url", srv.URL, "chart", "--set", "3", "--dark", "--out", path)

			convey.Convey("Then a PNG should be written", func() {
				convey.So(err, convey.ShouldBeNil)
				data, err := os.ReadFile(path)
				convey.So(err, convey.ShouldBeNil)
				convey.So(data[:4], convey.ShouldResemble, []byte{0x89, 'P', 'N', 'G'})
				convey.So(paths, convey.ShouldResemble, []string{"/asset/distribution3"})
			})
		})

		convey.Convey("When exporting", func() {
			path := filepath.Join(t.TempDir(), "dist.xlsx")
			err := run(&out, "--base-url", srv.URL, "export", "--out", path)

			convey.Convey("Then the workbook should hold the rows", func() {
				convey.So(err, convey.ShouldBeNil)
				f, err := excelize.OpenFile(path)
				convey.So(err, convey.ShouldBeNil)
				defer func() { _ = f.Close() }()
				rows, err := f.GetRows("Distribution")
				convey.So(err, convey.ShouldBeNil)
				convey.So(rows, convey.ShouldHaveLength, 4)
			})
		})
	})

	convey.Convey("Given a backend that rejects the request", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"success":false,"data":null,"msg":"获取个人资产分布数据失败"}`))
		}))
		defer srv.Close()

		path := filepath.Join(t.TempDir(), "chart.png")
		err := run(io.Discard, "--base-url", srv.URL, "chart", "--out", path)

		convey.Convey("Then the error should surface and no file should be left", func() {
			convey.So(err, convey.ShouldNotBeNil)
			_, statErr := os.Stat(path)
			convey.So(os.IsNotExist(statErr), convey.ShouldBeTrue)
		})
	})
}
