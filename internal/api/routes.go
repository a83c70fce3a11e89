package api

import (
	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"
	"github.com/isavita/sugai/internal/api/middleware"
	"github.com/isavita/sugai/internal/models"
)

func RegisterRoutes(container *restful.Container, handler *Handler) {
	ws := new(restful.WebService)

	ws.
		Path("/api/v1").
		Consumes(restful.MIME_JSON).
		Produces(restful.MIME_JSON)

	// Health endpoint
	ws.
		Route(ws.GET("health").
			To(handler.Health).
			Doc("Health check").
			Metadata(restfulspec.KeyOpenAPITags, []string{"health"}).
			Writes(HealthResponse{}).
			Returns(200, "OK", HealthResponse{}))

	ws.
		Route(ws.POST("/analyses").
			To(handler.CreateAnalysis).
			Doc("Analyze an uploaded pump export with every advisor").
			Metadata(restfulspec.KeyOpenAPITags, []string{"analyses"}).
			Consumes("multipart/form-data").
			Writes(models.AnalysisReport{}).
			Returns(200, "OK", models.AnalysisReport{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	ws.
		Route(ws.POST("/analyses/advisor/{advisor_name}").
			To(handler.CreateSingleAdvisorAnalysis).
			Doc("Analyze an uploaded pump export with a single advisor").
			Metadata(restfulspec.KeyOpenAPITags, []string{"analyses"}).
			Param(ws.PathParameter("advisor_name", "Advisor name (basal, bolus, alarms)").DataType("string")).
			Consumes("multipart/form-data").
			Writes(models.AnalysisReport{}).
			Returns(200, "OK", models.AnalysisReport{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(404, "Advisor Not Found", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	ws.
		Route(ws.GET("/analyses/{analysis_id}").
			To(handler.GetAnalysis).
			Doc("Fetch a stored analysis report").
			Metadata(restfulspec.KeyOpenAPITags, []string{"analyses"}).
			Param(ws.PathParameter("analysis_id", "Report ID").DataType("string")).
			Writes(models.AnalysisReport{}).
			Returns(200, "OK", models.AnalysisReport{}).
			Returns(404, "Not Found", middleware.ErrorResponse{}))

	ws.
		Route(ws.GET("/analyses").
			To(handler.ListAnalyses).
			Doc("List stored analysis reports, newest first").
			Metadata(restfulspec.KeyOpenAPITags, []string{"analyses"}).
			Param(ws.QueryParameter("limit", "Maximum number of reports (default: 50)").DataType("integer").Required(false)).
			Writes([]models.AnalysisReport{}).
			Returns(200, "OK", []models.AnalysisReport{}))

	container.Add(ws)
}
