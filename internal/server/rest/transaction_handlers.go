package rest

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/expensetracker/internal/common"
	"github.com/dmitrijs2005/expensetracker/internal/server/services"
	"github.com/gin-gonic/gin"
)

const csvContentType = "text/csv; charset=utf-8"

func (s *Server) addIncome(c *gin.Context) {
	id, _ := userID(c)

	var req services.IncomeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondWithError(c, fmt.Errorf("%w: invalid request body", common.ErrorValidation))
		return
	}

	income, err := s.deps.Incomes.Add(c.Request.Context(), id, req)
	if err != nil {
		s.respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, income)
}

func (s *Server) listIncome(c *gin.Context) {
	id, _ := userID(c)

	list, err := s.deps.Incomes.List(c.Request.Context(), id)
	if err != nil {
		s.respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) deleteIncome(c *gin.Context) {
	id, _ := userID(c)

	if err := s.deps.Incomes.Delete(c.Request.Context(), id, c.Param("id")); err != nil {
		s.respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Income deleted successfully"})
}

func (s *Server) exportIncome(c *gin.Context) {
	id, _ := userID(c)

	var buf bytes.Buffer
	if err := s.deps.Incomes.ExportCSV(c.Request.Context(), id, &buf); err != nil {
		s.respondWithError(c, err)
		return
	}
	sendAttachment(c, "income_details.csv", buf.Bytes())
}

func (s *Server) addExpense(c *gin.Context) {
	id, _ := userID(c)

	var req services.ExpenseInput
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondWithError(c, fmt.Errorf("%w: invalid request body", common.ErrorValidation))
		return
	}

	expense, err := s.deps.Expenses.Add(c.Request.Context(), id, req)
	if err != nil {
		s.respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, expense)
}

func (s *Server) listExpense(c *gin.Context) {
	id, _ := userID(c)

	list, err := s.deps.Expenses.List(c.Request.Context(), id)
	if err != nil {
		s.respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) deleteExpense(c *gin.Context) {
	id, _ := userID(c)

	if err := s.deps.Expenses.Delete(c.Request.Context(), id, c.Param("id")); err != nil {
		s.respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted successfully"})
}

func (s *Server) exportExpense(c *gin.Context) {
	id, _ := userID(c)

	var buf bytes.Buffer
	if err := s.deps.Expenses.ExportCSV(c.Request.Context(), id, &buf); err != nil {
		s.respondWithError(c, err)
		return
	}
	sendAttachment(c, "expense_details.csv", buf.Bytes())
}

func (s *Server) dashboard(c *gin.Context) {
	id, _ := userID(c)

	d, err := s.deps.Dashboard.Get(c.Request.Context(), id, s.now())
	if err != nil {
		s.respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func sendAttachment(c *gin.Context, filename string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, csvContentType, data)
}
