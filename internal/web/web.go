package web

import (
	"io/fs"
	"net"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html"
	"github.com/sirupsen/logrus"

	embedded "github.com/goserg/rosterserver"
	"github.com/goserg/rosterserver/internal/config"
	"github.com/goserg/rosterserver/internal/metrics"
	"github.com/goserg/rosterserver/internal/service"
	"github.com/goserg/rosterserver/internal/web/webpath"
)

type Server struct {
	playerService *service.PlayerService
	app           *fiber.App
	cfg           config.Server
	log           *logrus.Entry
}

func New(ps *service.PlayerService, cfg config.Server, l *logrus.Logger, rec *metrics.Recorder) (*Server, error) {
	server := Server{
		playerService: ps,
		cfg:           cfg,
		log: l.WithFields(logrus.Fields{
			"from": "web",
		}),
	}

	fsFS, err := fs.Sub(embedded.Views, "views")
	if err != nil {
		return nil, err
	}
	engine := html.NewFileSystem(http.FS(fsFS), ".html")
	engine.Reload(cfg.Debug)
	engine.Debug(cfg.Debug)

	app := fiber.New(fiber.Config{
		Views:                 engine,
		ErrorHandler:          server.handleError,
		DisableStartupMessage: true,
	})
	app.Use(requestID(), server.logRequests(), recover.New())

	app.Get(webpath.Home, server.handleIndex)
	app.Get(webpath.NewPlayer, server.handleNewPlayerPage)
	app.Get(webpath.Player, server.handlePlayerPage)
	app.Get(webpath.EditPlayer, server.handleEditPlayerPage)
	app.Get(webpath.Metrics, adaptor.HTTPHandler(rec.Handler()))

	app.Get(webpath.ApiPlayers, server.handleListPlayers)
	app.Post(webpath.ApiPlayers, server.handleCreatePlayer)
	app.Get(webpath.ApiPlayer, server.handleGetPlayer)
	app.Put(webpath.ApiPlayer, server.handleUpdatePlayer)
	app.Delete(webpath.ApiPlayer, server.handleDeletePlayer)

	server.app = app
	return &server, nil
}

func (s *Server) Serve() error {
	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	s.log.WithField("addr", addr).Info("listening")
	return s.app.Listen(addr)
}

// Listener serves on an already open listener.
func (s *Server) Listener(ln net.Listener) error {
	return s.app.Listener(ln)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) handleListPlayers(ctx *fiber.Ctx) error {
	players, err := s.playerService.ListPlayers(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(convertPlayers(players))
}

func (s *Server) handleCreatePlayer(ctx *fiber.Ctx) error {
	req, err := service.NewCreatePlayerRequest(service.ParsePayload(ctx.Body()))
	if err != nil {
		return err
	}
	player, err := s.playerService.CreatePlayer(ctx.UserContext(), req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(convertPlayer(player))
}

func (s *Server) handleGetPlayer(ctx *fiber.Ctx) error {
	id, err := playerID(ctx)
	if err != nil {
		return err
	}
	player, err := s.playerService.Get(ctx.UserContext(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(convertPlayer(player))
}

func (s *Server) handleUpdatePlayer(ctx *fiber.Ctx) error {
	id, err := playerID(ctx)
	if err != nil {
		return err
	}
	req := service.NewUpdatePlayerRequest(service.ParsePayload(ctx.Body()))
	player, err := s.playerService.UpdatePlayer(ctx.UserContext(), id, req)
	if err != nil {
		return err
	}
	return ctx.JSON(convertPlayer(player))
}

func (s *Server) handleDeletePlayer(ctx *fiber.Ctx) error {
	id, err := playerID(ctx)
	if err != nil {
		return err
	}
	if err := s.playerService.DeletePlayer(ctx.UserContext(), id); err != nil {
		return err
	}
	return ctx.JSON(messageResponse{Message: "deleted"})
}

func playerID(ctx *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil {
		return 0, fiber.ErrNotFound
	}
	return id, nil
}

func (s *Server) handleIndex(ctx *fiber.Ctx) error {
	return ctx.Render("index", newData("Players"), "layouts/main")
}

func (s *Server) handleNewPlayerPage(ctx *fiber.Ctx) error {
	return ctx.Render("form", newData("New player").With("Mode", "create"), "layouts/main")
}

func (s *Server) handlePlayerPage(ctx *fiber.Ctx) error {
	id, err := playerID(ctx)
	if err != nil {
		return err
	}
	return ctx.Render("player", newData("Player").With("PlayerID", id), "layouts/main")
}

func (s *Server) handleEditPlayerPage(ctx *fiber.Ctx) error {
	id, err := playerID(ctx)
	if err != nil {
		return err
	}
	return ctx.Render("form", newData("Edit player").
		With("Mode", "edit").
		With("PlayerID", id), "layouts/main")
}
