package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gold2201/LocalNetworkProject/internal/apiserver/database"
	"github.com/gold2201/LocalNetworkProject/internal/apiserver/filter"
	"github.com/gold2201/LocalNetworkProject/internal/common/errorx"
	"github.com/gold2201/LocalNetworkProject/pkg/export"
)

// HeaderTotalCount carries the unpaginated row count of a list
const HeaderTotalCount = "X-Total-Count"

// resource serves the CRUD and export routes of one table. T is the stored
// record and R its response form.
type resource[T any, R any] struct {
	h *Handler

	// path is the route segment, e.g. "host-computers".
	path string
	// entity names the record in not found errors.
	entity string
	// exportBase prefixes export file names, e.g. "host_computers_export".
	exportBase string

	repo          *database.Repo[T]
	filters       filter.Set
	exportFilters filter.Set

	id    func(*T) *uint
	build func(c *gin.Context, items []T) ([]R, error)
	// check validates a record about to be written. id is zero on create.
	check func(ctx context.Context, v *T, id uint) error
	// afterCreate runs in the create transaction once the row has its id.
	afterCreate func(ctx context.Context, v *T) error
	// envelope wraps list responses when set.
	envelope func(items []R) any
	// conflict is the message of a unique constraint violation.
	conflict string
}

func (r *resource[T, R]) writeErr(err error) error {
	if errors.Is(err, database.ErrConflict) {
		return errorx.ConflictError(r.conflict, err)
	}
	return err
}

func (r *resource[T, R]) one(c *gin.Context, v *T) (*R, error) {
	out, err := r.build(c, []T{*v})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

func (r *resource[T, R]) load(c *gin.Context) (*T, error) {
	id, err := pathID(c, r.entity)
	if err != nil {
		return nil, err
	}
	v, err := r.repo.Get(c.Request.Context(), id)
	if err != nil {
		return nil, notFound(err, r.entity, id)
	}
	return v, nil
}

// List handles GET /api/<path>
func (r *resource[T, R]) List(c *gin.Context) {
	ctx := c.Request.Context()
	q, err := r.filters.Parse(c.Request.URL.Query(), r.h.db.Dialect())
	if err != nil {
		r.h.fail(c, err)
		return
	}

	items, err := r.repo.List(ctx, q.ListScopes()...)
	if err != nil {
		r.h.fail(c, err)
		return
	}
	if q.Paginated() {
		total, err := r.repo.Count(ctx, q.Filters...)
		if err != nil {
			r.h.fail(c, err)
			return
		}
		c.Header(HeaderTotalCount, strconv.FormatInt(total, 10))
	}

	out, err := r.build(c, items)
	if err != nil {
		r.h.fail(c, err)
		return
	}
	if r.envelope != nil {
		c.JSON(http.StatusOK, r.envelope(out))
		return
	}
	c.JSON(http.StatusOK, out)
}

// Get handles GET /api/<path>/:id
func (r *resource[T, R]) Get(c *gin.Context) {
	v, err := r.load(c)
	if err != nil {
		r.h.fail(c, err)
		return
	}
	out, err := r.one(c, v)
	if err != nil {
		r.h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// Create handles POST /api/<path>
func (r *resource[T, R]) Create(c *gin.Context) {
	ctx := c.Request.Context()
	v := new(T)
	if err := bindBody(c, v); err != nil {
		r.h.fail(c, err)
		return
	}
	*r.id(v) = 0
	if err := r.check(ctx, v, 0); err != nil {
		r.h.fail(c, err)
		return
	}

	err := r.h.db.Transaction(ctx, func(ctx context.Context) error {
		if err := r.repo.Create(ctx, v); err != nil {
			return err
		}
		if r.afterCreate != nil {
			return r.afterCreate(ctx, v)
		}
		return nil
	})
	if err != nil {
		r.h.fail(c, r.writeErr(err))
		return
	}
	r.respond(c, http.StatusCreated, *r.id(v))
}

// Replace handles PUT /api/<path>/:id. Fields missing from the body are
// reset to their zero values.
func (r *resource[T, R]) Replace(c *gin.Context) {
	ctx := c.Request.Context()
	id, err := pathID(c, r.entity)
	if err != nil {
		r.h.fail(c, err)
		return
	}
	ok, err := r.repo.Exists(ctx, id)
	if err != nil {
		r.h.fail(c, err)
		return
	}
	if !ok {
		r.h.fail(c, notFound(database.ErrNotFound, r.entity, id))
		return
	}

	v := new(T)
	if err := bindBody(c, v); err != nil {
		r.h.fail(c, err)
		return
	}
	r.save(c, v, id)
}

// Patch handles PATCH /api/<path>/:id. Fields missing from the body keep
// their stored values.
func (r *resource[T, R]) Patch(c *gin.Context) {
	v, err := r.load(c)
	if err != nil {
		r.h.fail(c, err)
		return
	}
	id := *r.id(v)
	if err := bindBody(c, v); err != nil {
		r.h.fail(c, err)
		return
	}
	r.save(c, v, id)
}

func (r *resource[T, R]) save(c *gin.Context, v *T, id uint) {
	ctx := c.Request.Context()
	*r.id(v) = id
	if err := r.check(ctx, v, id); err != nil {
		r.h.fail(c, err)
		return
	}
	if err := r.repo.Update(ctx, v); err != nil {
		r.h.fail(c, r.writeErr(err))
		return
	}
	r.respond(c, http.StatusOK, id)
}

// respond reloads the row so associations are current
func (r *resource[T, R]) respond(c *gin.Context, status int, id uint) {
	v, err := r.repo.Get(c.Request.Context(), id)
	if err != nil {
		r.h.fail(c, notFound(err, r.entity, id))
		return
	}
	out, err := r.one(c, v)
	if err != nil {
		r.h.fail(c, err)
		return
	}
	c.JSON(status, out)
}

// Delete handles DELETE /api/<path>/:id
func (r *resource[T, R]) Delete(c *gin.Context) {
	id, err := pathID(c, r.entity)
	if err != nil {
		r.h.fail(c, err)
		return
	}
	if err := r.repo.Delete(c.Request.Context(), id); err != nil {
		r.h.fail(c, notFound(err, r.entity, id))
		return
	}
	c.Status(http.StatusNoContent)
}

// Export handles GET /api/<path>/export
func (r *resource[T, R]) Export(c *gin.Context) {
	r.export(c, r.exportBase)
}

// ExportFiltered handles GET /api/<path>/export_filtered. The file name
// records the filters applied.
func (r *resource[T, R]) ExportFiltered(c *gin.Context) {
	r.export(c, r.exportBase+"_"+export.FilterSummary(c.Request.URL.Query()))
}

func (r *resource[T, R]) export(c *gin.Context, base string) {
	ctx := c.Request.Context()
	format, err := exportFormat(c)
	if err != nil {
		r.h.fail(c, err)
		return
	}
	q, err := r.exportFilters.Parse(c.Request.URL.Query(), r.h.db.Dialect())
	if err != nil {
		r.h.fail(c, err)
		return
	}
	items, err := r.repo.List(ctx, q.ListScopes()...)
	if err != nil {
		r.h.fail(c, err)
		return
	}

	table := export.Humanize(ctx, export.FromStructs("", items), r.h.db.LabelEntities(), r.h.db.Label)
	f, err := r.h.exporter.Write(ctx, export.Request{
		Kind:     r.path,
		Base:     base,
		Sections: export.Sections{table},
		Format:   format,
	})
	if err != nil {
		r.h.fail(c, err)
		return
	}
	sendFile(c, f)
}

// register mounts the CRUD and export routes on g
func (r *resource[T, R]) register(g *gin.RouterGroup) *gin.RouterGroup {
	rg := g.Group("/" + r.path)
	rg.GET("", r.List)
	rg.POST("", r.Create)
	rg.GET("/export", r.Export)
	rg.GET("/export_filtered", r.ExportFiltered)
	rg.GET("/:id", r.Get)
	rg.PUT("/:id", r.Replace)
	rg.PATCH("/:id", r.Patch)
	rg.DELETE("/:id", r.Delete)
	return rg
}
