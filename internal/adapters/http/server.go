package httpadapter

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"bwa/internal/api"
	"bwa/internal/domain"
	"bwa/internal/ports"
	"bwa/internal/services/posts"
	"bwa/internal/services/profiles"
	"bwa/internal/services/scanner"
	"bwa/internal/services/timeline"
)

// UserHeader carries the authenticated user id set by the upstream proxy.
const UserHeader = "X-User-ID"

const maxRequestBody = 64 << 10

type Scanner interface {
	PerformScan(ctx context.Context, req scanner.Request) (scanner.Result, error)
	Enqueue(ctx context.Context, req scanner.Request) (string, error)
	Status(ctx context.Context, jobID string) (ports.JobStatus, error)
}

type Posts interface {
	Create(ctx context.Context, in posts.Input) (posts.Result, error)
}

type Timelines interface {
	Get(ctx context.Context, hostname string) (timeline.Timeline, error)
}

type Profiles interface {
	GetLatest(ctx context.Context, hostname string) (profiles.Profile, error)
}

type Companies interface {
	List(ctx context.Context) []domain.Company
	Get(ctx context.Context, id string) (domain.Company, error)
}

// Server implements the generated StrictServerInterface.
type Server struct {
	scanner   Scanner
	posts     Posts
	timelines Timelines
	profiles  Profiles
	companies Companies
	log       *zap.Logger
}

var _ api.StrictServerInterface = (*Server)(nil)

func New(sc Scanner, ps Posts, tl Timelines, pr Profiles, co Companies, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{scanner: sc, posts: ps, timelines: tl, profiles: pr, companies: co, log: log}
}

// Routes returns a chi.Router mounting the generated handlers.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(limitBody)

	handler := api.NewStrictHandlerWithOptions(s, []api.StrictMiddlewareFunc{withClientIP}, api.StrictHTTPServerOptions{
		RequestErrorHandlerFunc:  s.badRequest,
		ResponseErrorHandlerFunc: s.writeError,
	})
	api.HandlerWithOptions(handler, api.ChiServerOptions{BaseRouter: r, ErrorHandlerFunc: s.badRequest})
	return r
}

// Strict handler methods. Service errors are returned as is and mapped to a
// problem response by writeError.

func (s *Server) GetHealthz(_ context.Context, _ api.GetHealthzRequestObject) (api.GetHealthzResponseObject, error) {
	return api.GetHealthz200JSONResponse{Status: "ok"}, nil
}

func (s *Server) ListCompanies(ctx context.Context, _ api.ListCompaniesRequestObject) (api.ListCompaniesResponseObject, error) {
	list := s.companies.List(ctx)
	out := make(api.ListCompanies200JSONResponse, 0, len(list))
	for _, c := range list {
		out = append(out, company(c))
	}
	return out, nil
}

func (s *Server) GetCompany(ctx context.Context, req api.GetCompanyRequestObject) (api.GetCompanyResponseObject, error) {
	c, err := s.companies.Get(ctx, req.Id)
	if err != nil {
		return nil, err
	}
	return api.GetCompany200JSONResponse(company(c)), nil
}

func (s *Server) PostScan(ctx context.Context, req api.PostScanRequestObject) (api.PostScanResponseObject, error) {
	in := scanner.Request{
		Hostname: req.Body.Hostname,
		Force:    value(req.Body.Force) || value(req.Params.Force),
		UserID:   value(req.Params.XUserID),
		IP:       clientIPFrom(ctx),
	}

	if req.Params.Wait != nil && !*req.Params.Wait {
		id, err := s.scanner.Enqueue(ctx, in)
		if err != nil {
			return nil, err
		}
		return api.PostScan202JSONResponse{JobId: id}, nil
	}

	res, err := s.scanner.PerformScan(ctx, in)
	if err != nil {
		return nil, err
	}
	out := scanResponse(res)
	if res.Warning != nil {
		p, _ := problemFor(res.Warning)
		out.Warning = &p
	}
	return api.PostScan200JSONResponse(out), nil
}

func (s *Server) GetScanJob(ctx context.Context, req api.GetScanJobRequestObject) (api.GetScanJobResponseObject, error) {
	st, err := s.scanner.Status(ctx, req.Id)
	if err != nil {
		return nil, err
	}
	return api.GetScanJob200JSONResponse{
		Id:       st.ID,
		Hostname: st.Hostname,
		Status:   api.JobState(st.Status),
		Error:    optional(st.Error),
		ScanId:   optional(st.ScanInteractionID),
	}, nil
}

func (s *Server) GetProfile(ctx context.Context, req api.GetProfileRequestObject) (api.GetProfileResponseObject, error) {
	p, err := s.profiles.GetLatest(ctx, req.Hostname)
	if err != nil {
		return nil, err
	}
	return api.GetProfile200JSONResponse(profileResponse(p)), nil
}

func (s *Server) GetTimeline(ctx context.Context, req api.GetTimelineRequestObject) (api.GetTimelineResponseObject, error) {
	tl, err := s.timelines.Get(ctx, req.Hostname)
	if err != nil {
		return nil, err
	}
	return api.GetTimeline200JSONResponse(timelineResponse(tl)), nil
}

func (s *Server) CreatePost(ctx context.Context, req api.CreatePostRequestObject) (api.CreatePostResponseObject, error) {
	res, err := s.posts.Create(ctx, posts.Input{
		Hostname: req.Hostname,
		UserID:   value(req.Params.XUserID),
		IP:       clientIPFrom(ctx),
		Body:     req.Body.Body,
	})
	if err != nil {
		return nil, err
	}
	return api.CreatePost201JSONResponse{
		Id:         res.Post.ID,
		CreatedAt:  res.Post.CreatedAt,
		Milestones: milestones(res.Milestones),
	}, nil
}

type clientIPKey struct{}

// withClientIP hands the caller address to handlers, which only see ctx.
func withClientIP(f api.StrictHandlerFunc, _ string) api.StrictHandlerFunc {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request, request any) (any, error) {
		return f(context.WithValue(ctx, clientIPKey{}, clientIP(r)), w, r, request)
	}
}

func clientIPFrom(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPKey{}).(string)
	return ip
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) badRequest(w http.ResponseWriter, _ *http.Request, err error) {
	writeProblem(w, http.StatusBadRequest, api.Problem{Code: "bad-request", Message: err.Error()})
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	p, status := problemFor(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
	writeProblem(w, status, p)
}

func writeProblem(w http.ResponseWriter, status int, p api.Problem) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: p})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Info("http request",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
