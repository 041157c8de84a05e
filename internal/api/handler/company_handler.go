package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/entitydesk/entity-api/internal/core/ports"
)

// CompanyHandler handles HTTP requests for company operations and reports.
type CompanyHandler struct {
	companies ports.CompanyService
	clients   ports.ClientService
}

func NewCompanyHandler(companies ports.CompanyService, clients ports.ClientService) *CompanyHandler {
	return &CompanyHandler{companies: companies, clients: clients}
}

// Create handles POST /api/companies.
//
// @Summary      Create a company
// @Tags         companies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCompanyRequest  true  "Company details"
// @Success      201   {object}  companyEnvelope
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/companies [post]
func (h *CompanyHandler) Create(c echo.Context) error {
	var req createCompanyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	company, err := h.companies.CreateCompany(c.Request().Context(), ports.CreateCompanyInput{
		Name:             req.Name,
		Industry:         req.Industry,
		Employees:        req.Employees,
		Revenue:          req.Revenue,
		RelatedCompanyID: req.RelatedCompanyID,
	})
	recordMutation("company", "create", err)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, companyEnvelope{
		Message: "Company created successfully",
		Company: toCompanyResponse(company),
	})
}

// Update handles PATCH /api/companies/:id.
//
// @Summary      Partially update a company
// @Tags         companies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                   true  "Company id"
// @Param        body  body      updateCompanyRequest  true  "Fields to change"
// @Success      200   {object}  companyEnvelope
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/companies/{id} [patch]
func (h *CompanyHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateCompanyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	company, err := h.companies.UpdateCompany(c.Request().Context(), id, ports.UpdateCompanyInput{
		Name:             req.Name,
		Industry:         req.Industry,
		Employees:        req.Employees,
		Revenue:          req.Revenue,
		RelatedCompanyID: req.RelatedCompanyID,
	})
	recordMutation("company", "update", err)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, companyEnvelope{
		Message: "Company updated successfully",
		Company: toCompanyResponse(company),
	})
}

// List handles GET /api/companies.
//
// @Summary      List active companies, newest first
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array}  companyResponse
// @Router       /api/companies [get]
func (h *CompanyHandler) List(c echo.Context) error {
	companies, err := h.companies.ListCompanies(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCompanyResponses(companies))
}

// EmployeeRange handles GET /api/reports/companies/employee-range?min=&max=.
//
// @Summary      Companies within an employee range, largest first
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        min  query     int  true  "Minimum employees"
// @Param        max  query     int  true  "Maximum employees"
// @Success      200  {array}   companyResponse
// @Failure      400  {object}  errorResponse
// @Router       /api/reports/companies/employee-range [get]
func (h *CompanyHandler) EmployeeRange(c echo.Context) error {
	min, err := queryInt(c, "min")
	if err != nil {
		return err
	}
	max, err := queryInt(c, "max")
	if err != nil {
		return err
	}

	companies, err := h.companies.CompaniesByEmployeeRange(c.Request().Context(), min, max)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCompanyResponses(companies))
}

// MaxRevenue handles GET /api/reports/companies/max-revenue.
//
// @Summary      Highest-revenue company per industry
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array}  ports.IndustryRevenue
// @Router       /api/reports/companies/max-revenue [get]
func (h *CompanyHandler) MaxRevenue(c echo.Context) error {
	leaders, err := h.companies.MaxRevenueByIndustry(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, leaders)
}

// CountByEmployees handles GET /api/reports/companies/count?min=.
//
// @Summary      Count companies with more than min employees
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        min  query     int  true  "Employee threshold"
// @Success      200  {object}  countResponse
// @Failure      400  {object}  errorResponse
// @Router       /api/reports/companies/count [get]
func (h *CompanyHandler) CountByEmployees(c echo.Context) error {
	min, err := queryInt(c, "min")
	if err != nil {
		return err
	}

	count, err := h.companies.CountCompaniesByMinEmployees(c.Request().Context(), min)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, countResponse{Count: count})
}

// ClientsByUser handles GET /api/reports/clients/by-user/:id.
//
// @Summary      Active clients owned by one user
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      int  true  "User id"
// @Success      200 {array}   clientResponse
// @Router       /api/reports/clients/by-user/{id} [get]
func (h *CompanyHandler) ClientsByUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	clients, err := h.clients.ListClientsByUser(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toClientResponses(clients))
}

// ClientsByCompanyName handles GET /api/reports/clients/by-company?name=.
//
// @Summary      Active clients whose company name contains a fragment
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        name  query     string  true  "Company name fragment"
// @Success      200   {array}   clientResponse
// @Router       /api/reports/clients/by-company [get]
func (h *CompanyHandler) ClientsByCompanyName(c echo.Context) error {
	name := c.QueryParam("name")
	if name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	clients, err := h.clients.ListClientsByCompanyName(c.Request().Context(), name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toClientResponses(clients))
}

// queryInt parses a required integer query parameter.
func queryInt(c echo.Context, name string) (int64, error) {
	v, err := strconv.ParseInt(c.QueryParam(name), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be an integer")
	}
	return v, nil
}
