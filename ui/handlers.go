package ui

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"coatlas/internal/colorscale"
	"coatlas/internal/errors"
	"coatlas/internal/geo"
	"coatlas/internal/metrics"
	"coatlas/internal/report"
)

// rankTableSize is the row count of the top/bottom tables, matching the
// original dashboard's "Top 3" and "Bottom 3" panels.
const rankTableSize = 3

func (s *Server) handleDashboard(c *gin.Context) {
	states, err := s.store.States()
	if err != nil {
		s.respondError(c, err)
		return
	}
	info, err := s.infoPanel()
	if err != nil {
		log.Printf("[Dashboard] About panel unavailable: %v", err)
	}

	data := gin.H{
		"Title":       "Nigeria Carbon Monoxide (CO) Dashboard (2020 - 2024)",
		"Years":       geo.Years,
		"DefaultYear": geo.Years[len(geo.Years)-1],
		"States":      states,
		"Ramp":        s.ramp,
		"Info":        info,
	}

	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(c.Writer, "dashboard.html", data); err != nil {
		log.Printf("[Dashboard] Template render failed: %v", err)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	if err := s.store.Warm(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleYears(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"years": geo.Years})
}

func (s *Server) handleStates(c *gin.Context) {
	states, err := s.store.States()
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"states": states, "count": len(states)})
}

// handleMap returns the choropleth payload for one year: the original
// FeatureCollection with each feature annotated with its value, natural-breaks
// class and class color, plus the legend the frontend draws.
func (s *Server) handleMap(c *gin.Context) {
	year, err := parseYear(c.Param("year"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	slice, err := s.store.Slice(year)
	if err != nil {
		s.respondError(c, err)
		return
	}

	values := metrics.Values(slice.Observations)
	var classification *colorscale.Classification
	if len(values) > 0 {
		classification, err = colorscale.Classify(values, s.ramp)
		if err != nil {
			s.respondError(c, err)
			return
		}
	}

	features := make([]gin.H, 0, len(slice.Regions))
	for _, region := range slice.Regions {
		props := gin.H{
			"state": region.State,
			"value": region.Value(year),
		}
		if v := region.Value(year); v != nil && classification != nil {
			props["class"] = classification.ClassOf(*v)
			props["color"] = classification.ColorOf(*v)
		}
		features = append(features, gin.H{
			"type":       "Feature",
			"geometry":   region.Geometry,
			"properties": props,
		})
	}

	payload := gin.H{
		"type":     "FeatureCollection",
		"year":     year,
		"features": features,
	}
	if classification != nil {
		payload["legend"] = gin.H{
			"title":  fmt.Sprintf("CO (mol/m²) %d", year),
			"breaks": classification.Breaks,
			"colors": classification.Colors,
			"gvf":    classification.GoodnessOfFit(values),
		}
	}
	c.JSON(http.StatusOK, payload)
}

// handleSummary returns the side-panel data for one year: top and bottom
// tables, the national mean, and the mean's position and color on the shared
// ramp for the donut indicator. mean is null when every state is null; the
// frontend renders its no-data placeholder.
func (s *Server) handleSummary(c *gin.Context) {
	year, err := parseYear(c.Param("year"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	slice, err := s.store.Slice(year)
	if err != nil {
		s.respondError(c, err)
		return
	}

	payload := gin.H{
		"year":   year,
		"top":    metrics.TopN(slice.Observations, rankTableSize),
		"bottom": metrics.BottomN(slice.Observations, rankTableSize),
		"ramp":   s.ramp,
		"mean":   nil,
	}

	if mean := metrics.NationalMean(slice.Observations); mean != nil {
		vmin, vmax, _ := metrics.Extent(slice.Observations)
		position := colorscale.Normalize(*mean, vmin, vmax)
		color, err := colorscale.Colorize(position, s.ramp)
		if err != nil {
			s.respondError(c, err)
			return
		}
		payload["mean"] = *mean
		payload["position"] = position
		payload["color"] = color
	}
	c.JSON(http.StatusOK, payload)
}

// handleSeries returns the per-state time series, years ascending.
func (s *Server) handleSeries(c *gin.Context) {
	state := c.Param("state")
	points, err := s.store.Series(state)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": state, "points": points})
}

func (s *Server) handleInfo(c *gin.Context) {
	info, err := s.infoPanel()
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"html": string(info)})
}

// handleExport streams the year table as an XLSX download.
func (s *Server) handleExport(c *gin.Context) {
	year, err := parseYear(c.Param("year"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	workbook, err := report.NewBuilder(s.store, s.ramp).YearWorkbook(year)
	if err != nil {
		s.respondError(c, err)
		return
	}
	defer workbook.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="nigeria_co_%d.xlsx"`, year))
	if err := workbook.Write(c.Writer); err != nil {
		log.Printf("[Export] Streaming workbook for %d failed: %v", year, err)
	}
}

// parseYear converts the path parameter; non-numeric input is INVALID_INPUT
// and out-of-range years surface as INVALID_YEAR from the selector.
func parseYear(raw string) (int, error) {
	year, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.InvalidInput(fmt.Sprintf("year %q is not a number", raw))
	}
	return year, nil
}

// respondError maps AppError codes onto HTTP statuses. Invalid year/state are
// 404s: both selection sets are closed, so these only appear on hand-crafted
// requests.
func (s *Server) respondError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.CodeInvalidYear, errors.CodeInvalidState:
		status = http.StatusNotFound
	case errors.CodeInvalidInput:
		status = http.StatusBadRequest
	case errors.CodeDataUnavailable:
		status = http.StatusServiceUnavailable
	}
	log.Printf("[HTTP] %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(status, gin.H{"error": err.Error(), "code": code})
}
