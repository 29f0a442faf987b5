package request_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/okian/assetlens/internal/request"
	. "github.com/smartystreets/goconvey/convey"
)

type seen struct {
	method string
	path   string
	query  map[string][]string
	auth   string
	reqID  string
}

func newBackend(status int, body string, got *seen) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got != nil {
			got.method = r.Method
			got.path = r.URL.Path
			got.query = r.URL.Query()
			got.auth = r.Header.Get("Authorization")
			got.reqID = r.Header.Get(request.HeaderRequestID)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func TestNew(t *testing.T) {
	Convey("Given client construction", t, func() {
		Convey("When no base url is provided", func() {
			_, err := request.New()
			So(errors.Is(err, request.ErrInvalidDescriptor), ShouldBeTrue)
		})

		Convey("When the base url has an unsupported scheme", func() {
			_, err := request.New(request.WithBaseURL("ftp://example.com"))
			So(errors.Is(err, request.ErrInvalidDescriptor), ShouldBeTrue)
		})

		Convey("When the base url is valid", func() {
			c, err := request.New(request.WithBaseURL("http://localhost:8888"), request.WithTimeout(time.Second))
			So(err, ShouldBeNil)
			So(c, ShouldNotBeNil)
		})
	})
}

func TestClient_Do(t *testing.T) {
	Convey("Given a backend returning a success envelope", t, func() {
		got := &seen{}
		srv := newBackend(http.StatusOK, `{"success":true,"data":{"total":3},"msg":"获取成功"}`, got)
		defer srv.Close()

		c, err := request.New(request.WithBaseURL(srv.URL+"/api"), request.WithToken("tok-123"))
		So(err, ShouldBeNil)

		Convey("When issuing a GET with params", func() {
			resp, err := c.Do(context.Background(), request.Descriptor{
				URL:    "/asset/distributionDetail",
				Method: "get",
				Params: map[string]string{"itemName": "活钱管理"},
			})

			Convey("Then the path, params and headers should reach the backend", func() {
				So(err, ShouldBeNil)
				So(got.method, ShouldEqual, http.MethodGet)
				So(got.path, ShouldEqual, "/api/asset/distributionDetail")
				So(got.query["itemName"], ShouldResemble, []string{"活钱管理"})
				So(got.auth, ShouldEqual, "Bearer tok-123")
				So(got.reqID, ShouldNotBeEmpty)
			})

			Convey("Then the envelope should be decoded", func() {
				So(resp.Success, ShouldBeTrue)
				So(resp.Msg, ShouldEqual, "获取成功")
				var data map[string]float64
				So(json.Unmarshal(resp.Data, &data), ShouldBeNil)
				So(data["total"], ShouldEqual, 3)
			})
		})

		Convey("When the method is omitted", func() {
			_, err := c.Do(context.Background(), request.Descriptor{URL: "/asset/distribution"})
			So(err, ShouldBeNil)
			So(got.method, ShouldEqual, http.MethodGet)
			So(got.query, ShouldBeEmpty)
		})

		Convey("When the descriptor url is empty or absolute", func() {
			_, err := c.Do(context.Background(), request.Descriptor{})
			So(errors.Is(err, request.ErrInvalidDescriptor), ShouldBeTrue)

			_, err = c.Do(context.Background(), request.Descriptor{URL: "http://elsewhere/asset"})
			So(errors.Is(err, request.ErrInvalidDescriptor), ShouldBeTrue)
		})
	})

	Convey("Given a client without a token", t, func() {
		got := &seen{}
		srv := newBackend(http.StatusOK, `{"success":true,"data":null,"msg":""}`, got)
		defer srv.Close()

		c, err := request.New(request.WithBaseURL(srv.URL))
		So(err, ShouldBeNil)

		_, err = c.Do(context.Background(), request.Descriptor{URL: "/asset/distribution"})
		So(err, ShouldBeNil)
		So(got.auth, ShouldBeEmpty)
	})
}

func TestClient_Errors(t *testing.T) {
	Convey("Given backends that fail in different ways", t, func() {
		ctx := context.Background()

		Convey("When the status is not 2xx", func() {
			srv := newBackend(http.StatusUnauthorized, `{"success":false,"data":null,"msg":"未登录"}`, nil)
			defer srv.Close()
			c, _ := request.New(request.WithBaseURL(srv.URL))

			_, err := c.Do(ctx, request.Descriptor{URL: "/asset/distribution"})

			Convey("Then a StatusError with the message should be returned", func() {
				So(errors.Is(err, request.ErrStatus), ShouldBeTrue)
				var serr *request.StatusError
				So(errors.As(err, &serr), ShouldBeTrue)
				So(serr.StatusCode, ShouldEqual, http.StatusUnauthorized)
				So(serr.Msg, ShouldEqual, "未登录")
			})
		})

		Convey("When the body is not JSON", func() {
			srv := newBackend(http.StatusOK, `<html>`, nil)
			defer srv.Close()
			c, _ := request.New(request.WithBaseURL(srv.URL))

			_, err := c.Do(ctx, request.Descriptor{URL: "/asset/distribution"})
			So(errors.Is(err, request.ErrDecode), ShouldBeTrue)
		})

		Convey("When the envelope reports failure", func() {
			srv := newBackend(http.StatusOK, `{"success":false,"data":null,"msg":"获取个人资产分布数据失败"}`, nil)
			defer srv.Close()
			c, _ := request.New(request.WithBaseURL(srv.URL))

			_, err := c.Do(ctx, request.Descriptor{URL: "/asset/distribution"})

			Convey("Then an APIError should carry the message", func() {
				var aerr *request.APIError
				So(errors.As(err, &aerr), ShouldBeTrue)
				So(aerr.Msg, ShouldEqual, "获取个人资产分布数据失败")
				So(errors.Is(err, request.ErrAPI), ShouldBeTrue)
			})
		})

		Convey("When the backend is unreachable", func() {
			srv := newBackend(http.StatusOK, `{}`, nil)
			url := srv.URL
			srv.Close()
			c, _ := request.New(request.WithBaseURL(url))

			_, err := c.Do(ctx, request.Descriptor{URL: "/asset/distribution"})
			So(errors.Is(err, request.ErrTransport), ShouldBeTrue)
		})
	})
}
