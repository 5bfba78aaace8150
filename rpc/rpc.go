package rpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/rpc"
	"time"

	"github.com/wfunc/drawguess/logger"
	"github.com/wfunc/drawguess/models"
	"github.com/wfunc/drawguess/room"
)

// ServiceName is the name GameService is registered under.
const ServiceName = "GameService"

const callTimeout = 2 * time.Second

// Server manages the RPC listener.
type Server struct {
	listener net.Listener
	address  string
	server   *rpc.Server
}

// NewServer listens on addr and registers service.
func NewServer(addr string, service *GameService) (*Server, error) {
	server := rpc.NewServer()
	if err := server.RegisterName(ServiceName, service); err != nil {
		return nil, err
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Server{
		listener: listener,
		address:  listener.Addr().String(),
		server:   server,
	}, nil
}

// Addr is the bound listener address.
func (s *Server) Addr() string {
	return s.address
}

// Start begins listening for RPC requests.
func (s *Server) Start() {
	logger.Log.Infof("RPC server listening on %s", s.address)
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				logger.Log.Info("RPC server listener closed.")
				return
			}
			logger.Log.Errorf("RPC server accept error: %v", err)
			continue
		}
		go s.server.ServeConn(conn)
	}
}

// Stop closes the RPC listener.
func (s *Server) Stop() {
	if s.listener != nil {
		logger.Log.Info("Stopping RPC server.")
		s.listener.Close()
	}
}

// RoomQuerier runs read-only functions against the live rooms.
type RoomQuerier interface {
	Query(ctx context.Context, fn func(*room.Registry)) error
}

// HistoryReader lists archived games.
type HistoryReader interface {
	RecentGames(ctx context.Context, limit int) ([]models.GameRecord, error)
}

// GameService is the struct that exposes RPC methods.
// Methods follow the net/rpc signature: exported args, pointer reply, error.
type GameService struct {
	rooms   RoomQuerier
	history HistoryReader
}

// NewGameService creates a new GameService.
func NewGameService(rooms RoomQuerier, history HistoryReader) *GameService {
	return &GameService{rooms: rooms, history: history}
}

// ListRoomsArgs filters by category when Category is set.
type ListRoomsArgs struct {
	Category string
}

type RoomSummary struct {
	Code         string
	Category     string
	Players      int
	CurrentRound int
	TotalRounds  int
}

type ListRoomsReply struct {
	Rooms []RoomSummary
}

func (gs *GameService) ListRooms(args *ListRoomsArgs, reply *ListRoomsReply) error {
	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()

	var rooms []RoomSummary
	err := gs.rooms.Query(ctx, func(reg *room.Registry) {
		for _, code := range reg.Codes() {
			r, _ := reg.Get(code)
			if args.Category != "" && r.Category != args.Category {
				continue
			}
			rooms = append(rooms, RoomSummary{
				Code:         r.Code,
				Category:     r.Category,
				Players:      len(r.Players),
				CurrentRound: r.CurrentRound,
				TotalRounds:  r.TotalRounds,
			})
		}
	})
	if err != nil {
		return err
	}
	reply.Rooms = rooms
	return nil
}

type RoomDetailsArgs struct {
	Code string
}

type RoomDetailsReply struct {
	Snapshot room.Snapshot
}

func (gs *GameService) RoomDetails(args *RoomDetailsArgs, reply *RoomDetailsReply) error {
	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()

	var (
		snapshot room.Snapshot
		found    bool
	)
	err := gs.rooms.Query(ctx, func(reg *room.Registry) {
		if r, ok := reg.Get(args.Code); ok {
			snapshot, found = r.Snapshot(), true
		}
	})
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: %s", room.ErrRoomNotFound, args.Code)
	}
	reply.Snapshot = snapshot
	return nil
}

type RecentGamesArgs struct {
	Limit int
}

type RecentGamesReply struct {
	Games []models.GameRecord
}

func (gs *GameService) RecentGames(args *RecentGamesArgs, reply *RecentGamesReply) error {
	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()

	games, err := gs.history.RecentGames(ctx, args.Limit)
	if err != nil {
		return err
	}
	reply.Games = games
	return nil
}
