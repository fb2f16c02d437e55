package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"

	"github.com/goserg/rosterserver/internal/config"
	"github.com/goserg/rosterserver/internal/metrics"
	"github.com/goserg/rosterserver/internal/service"
	"github.com/goserg/rosterserver/internal/storage/mem"
)

type APISuite struct {
	suite.Suite
	mode   string
	server *Server
}

func TestAPI(t *testing.T) {
	suite.Run(t, &APISuite{mode: config.UpdateModeLenient})
}

func TestAPIStrict(t *testing.T) {
	suite.Run(t, &APISuite{mode: config.UpdateModeStrict})
}

func (s *APISuite) SetupTest() {
	l := logrus.New()
	l.SetOutput(io.Discard)
	cfg := config.Server{UpdateMode: s.mode}
	rec := metrics.NewRecorder()
	ps := service.New(mem.New(), cfg, l, rec)
	server, err := New(ps, cfg, l, rec)
	s.Require().NoError(err)
	s.server = server
}

func (s *APISuite) do(method, path, body string) (int, []byte) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.server.app.Test(req, -1)
	s.Require().NoError(err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	return resp.StatusCode, data
}

func (s *APISuite) decode(data []byte, v any) {
	s.Require().NoError(json.Unmarshal(data, v), string(data))
}

func (s *APISuite) create(body string) playerResponse {
	status, data := s.do(http.MethodPost, "/api/players", body)
	s.Require().Equal(http.StatusCreated, status, string(data))
	var p playerResponse
	s.decode(data, &p)
	return p
}

func (s *APISuite) errorCode(data []byte) string {
	var resp errorResponse
	s.decode(data, &resp)
	return resp.Code
}

const kenLee = `{"name":"Ken Lee","team":"Lions","position":"P","batting_avg":"0.250","bio":""}`

func (s *APISuite) TestCreate() {
	p := s.create(kenLee)
	s.Equal(playerResponse{ID: p.ID, Name: "Ken Lee", Team: "Lions", Position: "P", BattingAvg: 0.25}, p)
}

func (s *APISuite) TestCreateRoundsBattingAvg() {
	p := s.create(`{"name":"A","team":"T","position":"P","batting_avg":0.33333,"bio":"x"}`)
	s.Equal(0.333, p.BattingAvg)
}

func (s *APISuite) TestCreateDuplicateName() {
	s.create(kenLee)
	status, data := s.do(http.MethodPost, "/api/players",
		`{"name":"ken lee","team":"Tigers","position":"C","batting_avg":0.1,"bio":""}`)
	s.Equal(http.StatusConflict, status)
	s.Equal("duplicateName", s.errorCode(data))
}

func (s *APISuite) TestCreateInvalidNumber() {
	status, data := s.do(http.MethodPost, "/api/players",
		`{"name":"Ken Lee","team":"Lions","position":"P","batting_avg":"abc","bio":""}`)
	s.Equal(http.StatusBadRequest, status)
	s.Equal("invalidNumber", s.errorCode(data))
}

func (s *APISuite) TestCreateMissingFields() {
	status, data := s.do(http.MethodPost, "/api/players", `{"name":"Ken Lee"}`)
	s.Equal(http.StatusBadRequest, status)
	var resp errorResponse
	s.decode(data, &resp)
	s.Equal("missingFields", resp.Code)
	s.Equal([]string{"team", "position", "batting_avg"}, resp.Fields)
	s.Equal("missing fields: team, position, batting_avg", resp.Error)
	s.NotEmpty(resp.RequestID)
}

func (s *APISuite) TestCreateNotJSON() {
	status, data := s.do(http.MethodPost, "/api/players", `name=Ken`)
	s.Equal(http.StatusBadRequest, status)
	s.Equal("missingFields", s.errorCode(data))
}

func (s *APISuite) TestCreateWithoutBio() {
	p := s.create(`{"name":"Ken","team":"Lions","position":"P","batting_avg":1}`)
	s.Equal("", p.Bio)
}

func (s *APISuite) TestGet() {
	created := s.create(kenLee)
	status, data := s.do(http.MethodGet, "/api/players/"+strconv.FormatInt(created.ID, 10), "")
	s.Equal(http.StatusOK, status)
	var got playerResponse
	s.decode(data, &got)
	s.Equal(created, got)
}

func (s *APISuite) TestGetMissing() {
	status, data := s.do(http.MethodGet, "/api/players/999", "")
	s.Equal(http.StatusNotFound, status)
	s.Equal("notFound", s.errorCode(data))
}

func (s *APISuite) TestGetNonIntegerID() {
	status, _ := s.do(http.MethodGet, "/api/players/abc", "")
	s.Equal(http.StatusNotFound, status)
}

func (s *APISuite) TestList() {
	for _, name := range []string{"Bravo", "alpha", "Charlie"} {
		s.create(`{"name":"` + name + `","team":"T","position":"P","batting_avg":0.2,"bio":""}`)
	}
	status, data := s.do(http.MethodGet, "/api/players", "")
	s.Equal(http.StatusOK, status)
	var players []playerResponse
	s.decode(data, &players)
	var names []string
	for _, p := range players {
		names = append(names, p.Name)
	}
	s.Equal([]string{"alpha", "Bravo", "Charlie"}, names)
}

func (s *APISuite) TestListEmpty() {
	status, data := s.do(http.MethodGet, "/api/players", "")
	s.Equal(http.StatusOK, status)
	s.JSONEq(`[]`, string(data))
}

func (s *APISuite) TestUpdateOneField() {
	p := s.create(kenLee)
	path := "/api/players/" + strconv.FormatInt(p.ID, 10)
	status, data := s.do(http.MethodPut, path, `{"team":"Tigers"}`)
	s.Equal(http.StatusOK, status, string(data))
	var got playerResponse
	s.decode(data, &got)
	want := p
	want.Team = "Tigers"
	s.Equal(want, got)
}

func (s *APISuite) TestUpdateEmptyBody() {
	p := s.create(kenLee)
	status, data := s.do(http.MethodPut, "/api/players/"+strconv.FormatInt(p.ID, 10), "")
	s.Equal(http.StatusOK, status)
	var got playerResponse
	s.decode(data, &got)
	s.Equal(p, got)
}

func (s *APISuite) TestUpdateConflict() {
	p := s.create(kenLee)
	s.create(`{"name":"Other","team":"T","position":"P","batting_avg":0.2,"bio":""}`)
	path := "/api/players/" + strconv.FormatInt(p.ID, 10)
	status, data := s.do(http.MethodPut, path, `{"name":"OTHER","team":"Tigers"}`)
	s.Equal(http.StatusConflict, status)
	s.Equal("duplicateName", s.errorCode(data))

	_, data = s.do(http.MethodGet, path, "")
	var got playerResponse
	s.decode(data, &got)
	s.Equal(p, got)
}

func (s *APISuite) TestUpdateInvalidNumber() {
	p := s.create(kenLee)
	path := "/api/players/" + strconv.FormatInt(p.ID, 10)
	status, data := s.do(http.MethodPut, path, `{"team":"Tigers","batting_avg":"abc"}`)
	s.Equal(http.StatusBadRequest, status)
	s.Equal("invalidNumber", s.errorCode(data))

	_, data = s.do(http.MethodGet, path, "")
	var got playerResponse
	s.decode(data, &got)
	if s.mode == config.UpdateModeStrict {
		s.Equal("Lions", got.Team)
	} else {
		s.Equal("Tigers", got.Team)
	}
}

func (s *APISuite) TestUpdateMissing() {
	status, _ := s.do(http.MethodPut, "/api/players/999", `{"team":"Tigers"}`)
	s.Equal(http.StatusNotFound, status)
}

func (s *APISuite) TestDelete() {
	p := s.create(kenLee)
	path := "/api/players/" + strconv.FormatInt(p.ID, 10)
	status, data := s.do(http.MethodDelete, path, "")
	s.Equal(http.StatusOK, status)
	s.JSONEq(`{"message":"deleted"}`, string(data))

	status, _ = s.do(http.MethodGet, path, "")
	s.Equal(http.StatusNotFound, status)
}

func (s *APISuite) TestDeleteMissing() {
	status, data := s.do(http.MethodDelete, "/api/players/999", "")
	s.Equal(http.StatusNotFound, status)
	s.Equal("notFound", s.errorCode(data))
}

func (s *APISuite) TestPages() {
	for _, path := range []string{"/", "/players/new", "/players/1", "/players/1/edit"} {
		status, data := s.do(http.MethodGet, path, "")
		s.Equal(http.StatusOK, status, path)
		s.Contains(string(data), "<nav>", path)
	}
	_, data := s.do(http.MethodGet, "/players/1/edit", "")
	s.Contains(string(data), `method = "PUT"`)
}

func (s *APISuite) TestRequestIDEchoed() {
	req := httptest.NewRequest(http.MethodGet, "/api/players", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	resp, err := s.server.app.Test(req, -1)
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Equal("abc-123", resp.Header.Get("X-Request-ID"))
}

func (s *APISuite) TestMetrics() {
	s.create(kenLee)
	status, data := s.do(http.MethodGet, "/metrics", "")
	s.Equal(http.StatusOK, status)
	s.Contains(string(data), `roster_store_operations_total{op="create",result="ok"} 1`)
}
