package feed_test

import (
	"SommPulse/internal/api/config"
	"SommPulse/internal/pkg/feed"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestFetchOrders(t *testing.T) {
	Convey("按游标翻页拉取订单", t, func(c C) {
		var gotTenant, gotAuth string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c.So(r.URL.Path, ShouldEqual, "/v1/order")
			gotTenant = r.Header.Get("tenant")
			gotAuth = r.Header.Get("Authorization")

			query := r.URL.Query()
			c.So(query.Get("channel"), ShouldEqual, "POS")
			c.So(query.Get("orderPaidDate"), ShouldEqual, "btw:2024-03-01|2024-03-31")

			w.Header().Set("Content-Type", "application/json")
			switch query.Get("cursor") {
			case "start":
				fmt.Fprint(w, `{"orders":[{"orderNumber":"N-1","orderPaidDate":"2024-03-04T10:00:00Z","subTotal":10000,"salesAssociate":{"name":"A"}}],"cursor":"page2"}`)
			case "page2":
				fmt.Fprint(w, `{"orders":[{"orderNumber":"N-2","orderPaidDate":"2024-03-05T10:00:00Z","subTotal":20000}],"cursor":""}`)
			default:
				w.WriteHeader(http.StatusBadRequest)
			}
		}))
		defer srv.Close()

		client := feed.NewClient(&config.FeedConfig{
			BaseURL:   srv.URL,
			Tenant:    "winery",
			AuthToken: "dG9rZW4=",
		})

		// 空游标等价于首页
		page, err := client.FetchOrders(context.Background(), "", "2024-03-01", "2024-03-31")
		So(err, ShouldBeNil)
		So(page.Orders, ShouldHaveLength, 1)
		So(page.Orders[0].OrderNumber, ShouldEqual, "N-1")
		So(page.Orders[0].SalesAssociate.Name, ShouldEqual, "A")
		So(*page.Orders[0].SubTotal, ShouldEqual, 10000)
		So(page.Cursor, ShouldEqual, "page2")

		So(gotTenant, ShouldEqual, "winery")
		So(gotAuth, ShouldEqual, "Basic dG9rZW4=")

		page, err = client.FetchOrders(context.Background(), page.Cursor, "2024-03-01", "2024-03-31")
		So(err, ShouldBeNil)
		So(page.Orders[0].OrderNumber, ShouldEqual, "N-2")
		So(page.Orders[0].SalesAssociate, ShouldBeNil)
		So(page.Cursor, ShouldBeEmpty)
	})

	Convey("非 200 状态返回错误", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		client := feed.NewClient(&config.FeedConfig{BaseURL: srv.URL})
		_, err := client.FetchOrders(context.Background(), "", "2024-03-01", "2024-03-31")
		So(err, ShouldNotBeNil)
	})
}

func TestFetchClubSignups(t *testing.T) {
	Convey("拉取会员注册记录", t, func(c C) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c.So(r.URL.Path, ShouldEqual, "/v1/club-membership")
			c.So(r.URL.Query().Get("cursor"), ShouldEqual, "start")
			c.So(r.URL.Query().Get("signupDate"), ShouldEqual, "btw:2024-03-01|2024-03-31")

			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"clubMemberships":[{"id":"c-1","signupDate":"2024-03-04","club":{"title":"Reserve"},"salesAssociate":{"name":"A"}}],"cursor":""}`)
		}))
		defer srv.Close()

		client := feed.NewClient(&config.FeedConfig{BaseURL: srv.URL})
		page, err := client.FetchClubSignups(context.Background(), "", "2024-03-01", "2024-03-31")
		So(err, ShouldBeNil)
		So(page.ClubMemberships, ShouldHaveLength, 1)
		So(page.ClubMemberships[0].ID, ShouldEqual, "c-1")
		So(page.ClubMemberships[0].Club.Title, ShouldEqual, "Reserve")
		So(page.Cursor, ShouldBeEmpty)
	})
}
