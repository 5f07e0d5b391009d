package api

import (
	"curoo/internal/repository"
	"curoo/internal/store"
	"curoo/pkg/logger"
	"net/http"

	httputil "curoo/pkg/http"

	"github.com/julienschmidt/httprouter"
)

// ResourceHandler serves one collection under basePath. Single records live
// under basePath/id/:id so that static sub-routes such as
// basePath/department/:department never collide with the id wildcard.
type ResourceHandler[T repository.Record, D repository.Draft[T], P repository.Patch[T]] struct {
	service  *Service[T, D, P]
	basePath string
	log      *logger.Logger

	// listQuery turns the list request's query string into a store query.
	listQuery func(r *http.Request) (store.Query, error)
}

func NewResourceHandler[T repository.Record, D repository.Draft[T], P repository.Patch[T]](service *Service[T, D, P], basePath string, log *logger.Logger) *ResourceHandler[T, D, P] {
	return &ResourceHandler[T, D, P]{
		service:  service,
		basePath: basePath,
		log:      log,
		listQuery: func(*http.Request) (store.Query, error) {
			return store.Query{}, nil
		},
	}
}

func (h *ResourceHandler[T, D, P]) RegisterRoutes(router *httprouter.Router) {
	router.GET(h.basePath, h.List)
	router.POST(h.basePath, h.Create)
	router.GET(h.basePath+"/id/:id", h.GetByID)
	router.PUT(h.basePath+"/id/:id", h.Update)
	router.PATCH(h.basePath+"/id/:id", h.Update)
	router.DELETE(h.basePath+"/id/:id", h.Delete)
}

func (h *ResourceHandler[T, D, P]) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var draft D
	if err := httputil.ReadJSON(r, &draft); err != nil {
		httputil.WriteError(w, err)
		return
	}

	record, err := h.service.Create(r.Context(), draft)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, record)
}

func (h *ResourceHandler[T, D, P]) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	record, err := h.service.Get(r.Context(), ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, record)
}

func (h *ResourceHandler[T, D, P]) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q, err := h.listQuery(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.writeList(w, r, q)
}

func (h *ResourceHandler[T, D, P]) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var patch P
	if err := httputil.ReadJSON(r, &patch); err != nil {
		httputil.WriteError(w, err)
		return
	}

	record, err := h.service.Update(r.Context(), ps.ByName("id"), patch)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, record)
}

func (h *ResourceHandler[T, D, P]) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

// ListBy serves a fixed sub-listing such as basePath/department/:department.
func (h *ResourceHandler[T, D, P]) ListBy(build func(ps httprouter.Params) (store.Query, error)) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		q, err := build(ps)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		h.writeList(w, r, q)
	}
}

func (h *ResourceHandler[T, D, P]) writeList(w http.ResponseWriter, r *http.Request, q store.Query) {
	records, err := h.service.List(r.Context(), q)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, records)
}
