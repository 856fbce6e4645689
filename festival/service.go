// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mvx-abi library.

package festival

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	mvxabi "github.com/pk910/mvx-abi"
	"github.com/pk910/mvx-abi/abiutils"
	"github.com/pk910/mvx-abi/query"
)

// ErrFestivalNotFound is returned when the contract has no festival for an id.
var ErrFestivalNotFound = errors.New("festival not found")

const (
	unknownFestivalName = "Unknown Festival"
	defaultTicketName   = "Festival Ticket"
	defaultTicketAmount = "1"
	accountNFTPageSize  = 100
)

// QueryClient runs view functions against the chain api.
type QueryClient interface {
	Query(ctx context.Context, scAddress string, funcName string, args ...string) (*query.Response, error)
	AccountNFTs(ctx context.Context, bech32 string, size int) ([]query.NFT, error)
}

var _ QueryClient = (*query.Client)(nil)

// Service fetches and decodes festival data of one contract.
type Service struct {
	client   QueryClient
	abi      *mvxabi.MvxAbi
	contract string
	log      *zap.Logger
	opts     []mvxabi.CallOption

	// ProbeFrom and ProbeTo bound the ids scanned by AllFestivals.
	ProbeFrom uint64
	ProbeTo   uint64
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithServiceLogger sets the logger, default is a no-op logger.
func WithServiceLogger(log *zap.Logger) ServiceOption {
	return func(s *Service) {
		s.log = log
	}
}

// WithDecodeOptions sets the call options passed to every decode.
func WithDecodeOptions(opts ...mvxabi.CallOption) ServiceOption {
	return func(s *Service) {
		s.opts = opts
	}
}

// WithProbeRange sets the ids scanned by AllFestivals.
func WithProbeRange(from, to uint64) ServiceOption {
	return func(s *Service) {
		s.ProbeFrom = from
		s.ProbeTo = to
	}
}

// NewService creates a service for the contract. A nil abi uses the global
// decoder instance.
func NewService(client QueryClient, abi *mvxabi.MvxAbi, contract string, opts ...ServiceOption) *Service {
	if abi == nil {
		abi = mvxabi.GetGlobalMvxAbi()
	}

	s := &Service{
		client:    client,
		abi:       abi,
		contract:  contract,
		log:       zap.NewNop(),
		ProbeFrom: 1,
		ProbeTo:   10,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Contract returns the bech32 address of the festival contract.
func (s *Service) Contract() string {
	return s.contract
}

func (s *Service) fetchFestival(ctx context.Context, id uint64) (*FestivalData, error) {
	response, err := s.client.Query(ctx, s.contract, FuncFestivalData, abiutils.ToHexArg(id))
	if err != nil {
		return nil, err
	}
	if len(response.ReturnData) == 0 {
		return nil, ErrFestivalNotFound
	}

	festival, err := DecodeFestivalData(s.abi, response.ReturnData[0], id, s.opts...)
	if errors.Is(err, abiutils.ErrRecordAbsent) {
		return nil, ErrFestivalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("festival %d: %w", id, err)
	}

	return festival, nil
}

// Festival fetches one festival. A record without name is returned as
// "Unknown Festival".
func (s *Service) Festival(ctx context.Context, id uint64) (*FestivalData, error) {
	festival, err := s.fetchFestival(ctx, id)
	if err != nil {
		return nil, err
	}

	if festival.Name == "" {
		festival.Name = unknownFestivalName
	}

	return festival, nil
}

// AllFestivals probes the configured id range and returns the festivals
// found, newest id first. Failed probes are logged and skipped.
func (s *Service) AllFestivals(ctx context.Context) ([]*FestivalData, error) {
	festivals := []*FestivalData{}

	for id := s.ProbeFrom; id <= s.ProbeTo; id++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		festival, err := s.fetchFestival(ctx, id)
		if err != nil {
			if !errors.Is(err, ErrFestivalNotFound) {
				s.log.Debug("festival probe failed", zap.Uint64("id", id), zap.Error(err))
			}
			continue
		}
		if festival.Name == "" {
			continue
		}

		festivals = append(festivals, festival)
	}

	sort.SliceStable(festivals, func(i, j int) bool {
		return festivals[i].ID > festivals[j].ID
	})

	return festivals, nil
}

func (s *Service) queryFestival(ctx context.Context, funcName string, festivalID uint64) ([]string, error) {
	response, err := s.client.Query(ctx, s.contract, funcName, abiutils.ToHexArg(festivalID))
	if err != nil {
		return nil, err
	}
	return response.ReturnData, nil
}

// TicketPrices fetches the price phases of a festival.
func (s *Service) TicketPrices(ctx context.Context, festivalID uint64) ([]*TicketPrice, error) {
	returnData, err := s.queryFestival(ctx, FuncTicketPrices, festivalID)
	if err != nil {
		return nil, err
	}
	return DecodeTicketPrices(s.abi, returnData, s.opts...)
}

// Events fetches the events of a festival.
func (s *Service) Events(ctx context.Context, festivalID uint64) ([]*FestivalEvent, error) {
	returnData, err := s.queryFestival(ctx, FuncEvents, festivalID)
	if err != nil {
		return nil, err
	}
	return DecodeEvents(s.abi, returnData, s.opts...)
}

// Products fetches the shop products of a festival.
func (s *Service) Products(ctx context.Context, festivalID uint64) ([]*FestivalProduct, error) {
	returnData, err := s.queryFestival(ctx, FuncProducts, festivalID)
	if err != nil {
		return nil, err
	}
	return DecodeProducts(s.abi, returnData, s.opts...)
}

// ResaleListings fetches the open resale listings of a festival.
func (s *Service) ResaleListings(ctx context.Context, festivalID uint64) ([]*ResaleListing, error) {
	returnData, err := s.queryFestival(ctx, FuncResaleListing, festivalID)
	if err != nil {
		return nil, err
	}
	return DecodeResaleListings(s.abi, returnData, s.opts...)
}

// UserTickets returns the nfts of owner that belong to the ticket
// collection tokenID.
func (s *Service) UserTickets(ctx context.Context, owner string, tokenID string) ([]*OwnedTicket, error) {
	nfts, err := s.client.AccountNFTs(ctx, owner, accountNFTPageSize)
	if err != nil {
		return nil, err
	}

	tickets := []*OwnedTicket{}
	for _, nft := range nfts {
		if !isTicketOf(nft, tokenID) {
			continue
		}
		tickets = append(tickets, ticketFromNFT(nft))
	}

	s.log.Debug("loaded user tickets", zap.String("owner", owner), zap.Int("nfts", len(nfts)), zap.Int("tickets", len(tickets)))

	return tickets, nil
}

func isTicketOf(nft query.NFT, tokenID string) bool {
	if tokenID == "" {
		return true
	}
	return nft.Collection == tokenID || strings.HasPrefix(nft.Identifier, tokenID)
}

func ticketFromNFT(nft query.NFT) *OwnedTicket {
	ticket := &OwnedTicket{
		TokenID:    nft.Identifier,
		Identifier: nft.Identifier,
		Nonce:      nft.Nonce,
		Balance:    nft.Balance,
		Name:       nft.Name,
		Attributes: nft.Attributes,
		URIs:       nft.URIs,
	}

	if ticket.TokenID == "" {
		ticket.TokenID = nft.Collection
	}
	if ticket.Balance == "" {
		ticket.Balance = defaultTicketAmount
	}
	if ticket.Name == "" {
		ticket.Name = defaultTicketName
	}
	if ticket.URIs == nil {
		ticket.URIs = []string{}
	}

	return ticket
}
