package api

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestErrorWrapping(t *testing.T) {
	Convey("Given op-tagged errors", t, func() {
		cause := errors.New("disk gone")

		Convey("When wrapping with a kind", func() {
			err := WrapKind("api.get_summary", ErrUnavailable, cause)

			Convey("Then both the kind and the cause match", func() {
				So(errors.Is(err, ErrUnavailable), ShouldBeTrue)
				So(errors.Is(err, cause), ShouldBeTrue)
				So(err.Error(), ShouldEqual, "api.get_summary: campaign data unavailable: disk gone")
			})
		})

		Convey("When creating a bare kind", func() {
			err := NewKind("api.get_top", ErrBadRequest)
			So(errors.Is(err, ErrBadRequest), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "api.get_top: bad request")
		})

		Convey("When wrapping nil", func() {
			So(Wrap("op", nil), ShouldBeNil)
			So(errors.Is(WrapKind("op", ErrBadRequest, nil), ErrBadRequest), ShouldBeTrue)
		})

		Convey("When wrapping a context error", func() {
			err := Wrap("op", context.Canceled)
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})
}

func TestQueryParser(t *testing.T) {
	Convey("Given a parser with default threshold 1.5", t, func() {
		p := queryParser{defaultMinROAS: 1.5}

		Convey("When the query is empty", func() {
			c, err := p.criteria(httptest.NewRequest("GET", "/summary", nil))
			So(err, ShouldBeNil)
			So(c.MinROAS, ShouldEqual, 1.5)
			So(c.Platform, ShouldEqual, "")
		})

		Convey("When values carry padding", func() {
			c, err := p.criteria(httptest.NewRequest("GET", "/summary?platform=%20YouTube%20&min_roas=%202%20", nil))
			So(err, ShouldBeNil)
			So(c.Platform, ShouldEqual, "YouTube")
			So(c.MinROAS, ShouldEqual, 2.0)
		})

		Convey("When min_roas is not finite", func() {
			for _, v := range []string{"NaN", "Inf", "-Inf", "abc", "-0.1"} {
				_, err := p.criteria(httptest.NewRequest("GET", "/summary?min_roas="+v, nil))
				So(err, ShouldNotBeNil)
			}
		})
	})
}

func TestGetErrorType(t *testing.T) {
	Convey("Given HTTP status codes", t, func() {
		So(getErrorType(500), ShouldEqual, "server_error")
		So(getErrorType(503), ShouldEqual, "unavailable")
		So(getErrorType(404), ShouldEqual, "not_found")
		So(getErrorType(400), ShouldEqual, "client_error")
		So(getErrorType(200), ShouldEqual, "unknown")
	})
}
