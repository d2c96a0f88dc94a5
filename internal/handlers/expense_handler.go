package handlers

import (
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "spendlog/internal/errors"
	"spendlog/internal/models"
	"spendlog/internal/pagination"
	"spendlog/internal/services"
	"spendlog/internal/validator"
)

// ExpenseHandler handles the expense list and the add, edit and delete forms
type ExpenseHandler struct {
	expenseService services.ExpenseServicer
	auditService   services.AuditServicer
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService services.ExpenseServicer, auditService services.AuditServicer) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService, auditService: auditService}
}

// ListQuery holds the list page's filter parameters as typed by the user
type ListQuery struct {
	Category  string `form:"category"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Search    string `form:"search"`
}

// filter converts the query into a service filter. Dates that do not parse
// are dropped and reported through the returned error.
func (q ListQuery) filter() (services.ExpenseFilter, error) {
	var f services.ExpenseFilter
	var bad []string

	if q.Category != "" {
		category := models.Category(q.Category)
		f.Category = &category
	}
	if q.StartDate != "" {
		if d, err := time.Parse(models.DateLayout, q.StartDate); err == nil {
			f.StartDate = &d
		} else {
			bad = append(bad, "start_date")
		}
	}
	if q.EndDate != "" {
		if d, err := time.Parse(models.DateLayout, q.EndDate); err == nil {
			f.EndDate = &d
		} else {
			bad = append(bad, "end_date")
		}
	}
	f.Search = strings.TrimSpace(q.Search)

	if len(bad) > 0 {
		return f, apperrors.WithMessage(apperrors.ErrInvalidInput,
			strings.Join(bad, " and ")+" must be a date in YYYY-MM-DD format; ignored.")
	}
	return f, nil
}

// encode renders the non-empty parameters as a query-string prefix ending in
// "&", ready for a page number to be appended.
func (q ListQuery) encode() template.URL {
	v := url.Values{}
	for key, val := range map[string]string{
		"category":   q.Category,
		"start_date": q.StartDate,
		"end_date":   q.EndDate,
		"search":     q.Search,
	} {
		if val != "" {
			v.Set(key, val)
		}
	}
	if len(v) == 0 {
		return ""
	}
	return template.URL(v.Encode() + "&")
}

// List renders the filtered expense list with totals and chart data
// @Summary     List expenses
// @Description Lists the caller's expenses, newest first, with category and monthly totals. Totals cover the whole filtered set; only the rows are paginated.
// @Tags        expenses
// @Produce     html
// @Param       category   query string false "Category" Enums(FOOD, TRAVEL, BILLS, SHOPPING, OTHER)
// @Param       start_date query string false "Inclusive start date (YYYY-MM-DD)"
// @Param       end_date   query string false "Inclusive end date (YYYY-MM-DD)"
// @Param       search     query string false "Case-insensitive title or notes substring"
// @Param       page       query int    false "Page number (default 1)"
// @Param       page_size  query int    false "Rows per page (default 50, max 200)"
// @Success     200 {string} string "HTML page"
// @Failure     302 {string} string "Redirect to /login when not authenticated"
// @Router      /list [get]
func (h *ExpenseHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query ListQuery
	_ = c.ShouldBindQuery(&query)

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		page = pagination.PageRequest{}
	}

	status := http.StatusOK
	var message string
	filter, filterErr := query.filter()
	if filterErr != nil {
		status, message = errorStatus(c, filterErr)
	}

	list, err := h.expenseService.List(userID, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categoryTotals := services.CategoryTotals(list.Expenses)
	monthlyTotals := services.MonthlyTotals(list.Expenses)
	result := pagination.Slice(list.Expenses, page)

	render(c, status, "expense_list.html", gin.H{
		"Title":          "Expenses",
		"Error":          message,
		"Filter":         query,
		"Query":          query.encode(),
		"Categories":     models.Categories,
		"Page":           result,
		"PrevPage":       result.Page - 1,
		"NextPage":       result.Page + 1,
		"Total":          list.Total.StringFixed(2),
		"CategoryTotals": categoryTotals,
		"MonthlyTotals":  monthlyTotals,
		"CategoryChart":  services.CategorySeries(categoryTotals),
		"MonthlyChart":   services.MonthlySeries(monthlyTotals),
	})
}

// ExpenseForm is the add/edit form payload. Amount and date stay strings so
// the form can be re-rendered exactly as typed when validation fails.
type ExpenseForm struct {
	Title          string `form:"title" binding:"required,max=100"`
	Amount         string `form:"amount" binding:"required"`
	Category       string `form:"category" binding:"omitempty,expense_category"`
	Date           string `form:"date" binding:"required"`
	Notes          string `form:"notes"`
	Recurring      string `form:"recurring"`
	RecurrenceType string `form:"recurrence_type" binding:"omitempty,recurrence_type"`
}

// formFromExpense fills the form with an existing expense for editing.
func formFromExpense(e *models.Expense) ExpenseForm {
	form := ExpenseForm{
		Title:          e.Title,
		Amount:         e.AmountString(),
		Category:       string(e.Category),
		Date:           e.DateString(),
		Notes:          e.Notes,
		RecurrenceType: string(e.RecurrenceType),
	}
	if e.Recurring {
		form.Recurring = "on"
	}
	return form
}

// input parses the form into a service input. A checked box submits any
// non-empty value.
func (f ExpenseForm) input() (services.ExpenseInput, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(f.Amount))
	if err != nil {
		return services.ExpenseInput{}, apperrors.ErrInvalidAmount
	}
	date, err := time.Parse(models.DateLayout, strings.TrimSpace(f.Date))
	if err != nil {
		return services.ExpenseInput{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "Date must be in YYYY-MM-DD format.")
	}
	return services.ExpenseInput{
		Title:          f.Title,
		Amount:         amount,
		Category:       models.Category(f.Category),
		Date:           date,
		Notes:          f.Notes,
		Recurring:      f.Recurring != "",
		RecurrenceType: models.RecurrenceType(f.RecurrenceType),
	}, nil
}

func (h *ExpenseHandler) renderForm(c *gin.Context, status int, form ExpenseForm, action, title, message string) {
	render(c, status, "expense_form.html", gin.H{
		"Title":           title,
		"Action":          action,
		"Form":            form,
		"Error":           message,
		"Categories":      models.Categories,
		"RecurrenceTypes": models.RecurrenceTypes,
	})
}

// bindForm binds and parses the posted form. On failure it re-renders the
// form with the error and returns false.
func (h *ExpenseHandler) bindForm(c *gin.Context, action, title string) (ExpenseForm, services.ExpenseInput, bool) {
	var form ExpenseForm
	if err := c.ShouldBind(&form); err != nil {
		status, message := errorStatus(c, apperrors.WithMessage(apperrors.ErrInvalidInput, validator.Message(err)))
		h.renderForm(c, status, form, action, title, message)
		return form, services.ExpenseInput{}, false
	}

	input, err := form.input()
	if err != nil {
		status, message := errorStatus(c, err)
		h.renderForm(c, status, form, action, title, message)
		return form, services.ExpenseInput{}, false
	}
	return form, input, true
}

// ShowAdd renders an empty expense form
// @Summary     New expense form
// @Tags        expenses
// @Produce     html
// @Success     200 {string} string "HTML page"
// @Router      /add [get]
func (h *ExpenseHandler) ShowAdd(c *gin.Context) {
	form := ExpenseForm{
		Category:       string(models.CategoryOther),
		Date:           time.Now().Format(models.DateLayout),
		RecurrenceType: string(models.RecurrenceNone),
	}
	h.renderForm(c, http.StatusOK, form, "/add", "Add expense", "")
}

// Add creates an expense owned by the caller
// @Summary     Create an expense
// @Tags        expenses
// @Accept      x-www-form-urlencoded
// @Produce     html
// @Param       title           formData string true  "Title (max 100 characters)"
// @Param       amount          formData string true  "Amount with at most two decimals"
// @Param       category        formData string false "Category" Enums(FOOD, TRAVEL, BILLS, SHOPPING, OTHER)
// @Param       date            formData string true  "Date (YYYY-MM-DD)"
// @Param       notes           formData string false "Notes"
// @Param       recurring       formData string false "Any value marks the expense recurring"
// @Param       recurrence_type formData string false "Recurrence" Enums(NONE, DAILY, WEEKLY, MONTHLY, YEARLY)
// @Success     302 {string} string "Redirect to /list"
// @Failure     400 {string} string "Form re-rendered with an error"
// @Router      /add [post]
func (h *ExpenseHandler) Add(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	form, input, ok := h.bindForm(c, "/add", "Add expense")
	if !ok {
		return
	}

	expense, err := h.expenseService.Create(userID, input)
	if err != nil {
		status, message := errorStatus(c, err)
		h.renderForm(c, status, form, "/add", "Add expense", message)
		return
	}

	h.auditService.Log(userID, models.AuditActionCreate, services.AuditResourceExpense, expense.ID, c.ClientIP(),
		services.ExpenseChanges(expense))

	c.Redirect(http.StatusFound, "/list")
}

// ShowEdit renders the form for an owned expense
// @Summary     Edit expense form
// @Tags        expenses
// @Produce     html
// @Param       id path int true "Expense ID"
// @Success     200 {string} string "HTML page"
// @Failure     404 {string} string "Not found or not owned"
// @Router      /edit/{id} [get]
func (h *ExpenseHandler) ShowEdit(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.Get(userID, expenseID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.renderForm(c, http.StatusOK, formFromExpense(expense), editPath(expenseID), "Edit expense", "")
}

// Edit overwrites every field of an owned expense
// @Summary     Update an expense
// @Tags        expenses
// @Accept      x-www-form-urlencoded
// @Produce     html
// @Param       id              path     int    true  "Expense ID"
// @Param       title           formData string true  "Title (max 100 characters)"
// @Param       amount          formData string true  "Amount with at most two decimals"
// @Param       category        formData string false "Category" Enums(FOOD, TRAVEL, BILLS, SHOPPING, OTHER)
// @Param       date            formData string true  "Date (YYYY-MM-DD)"
// @Param       notes           formData string false "Notes"
// @Param       recurring       formData string false "Any value marks the expense recurring"
// @Param       recurrence_type formData string false "Recurrence" Enums(NONE, DAILY, WEEKLY, MONTHLY, YEARLY)
// @Success     302 {string} string "Redirect to /list"
// @Failure     400 {string} string "Form re-rendered with an error"
// @Failure     404 {string} string "Not found or not owned"
// @Router      /edit/{id} [post]
func (h *ExpenseHandler) Edit(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	// Ownership is settled before the form so a foreign id never leaks a 400.
	if _, err := h.expenseService.Get(userID, expenseID); err != nil {
		respondWithError(c, err)
		return
	}

	form, input, ok := h.bindForm(c, editPath(expenseID), "Edit expense")
	if !ok {
		return
	}

	expense, err := h.expenseService.Update(userID, expenseID, input)
	if err != nil {
		if errors.Is(err, apperrors.ErrExpenseNotFound) {
			respondWithError(c, err)
			return
		}
		status, message := errorStatus(c, err)
		h.renderForm(c, status, form, editPath(expenseID), "Edit expense", message)
		return
	}

	h.auditService.Log(userID, models.AuditActionUpdate, services.AuditResourceExpense, expense.ID, c.ClientIP(),
		services.ExpenseChanges(expense))

	c.Redirect(http.StatusFound, "/list")
}

// Delete removes an owned expense
// @Summary     Delete an expense
// @Tags        expenses
// @Param       id path int true "Expense ID"
// @Success     302 {string} string "Redirect to /list"
// @Failure     404 {string} string "Not found or not owned"
// @Router      /delete/{id} [post]
func (h *ExpenseHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.expenseService.Delete(userID, expenseID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, models.AuditActionDelete, services.AuditResourceExpense, expenseID, c.ClientIP(), nil)

	c.Redirect(http.StatusFound, "/list")
}

func editPath(id uint) string {
	return "/edit/" + strconv.FormatUint(uint64(id), 10)
}
