package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"crm/internal/domain"
	"crm/internal/repository"
	"crm/internal/service"
)

type errorResp struct {
	Error string `json:"error"`
}

// Customer handlers
type createCustomerReq struct {
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone"`
}

type createCustomerResp struct {
	Customer *domain.Customer `json:"customer"`
	Message  string           `json:"message"`
}

// @Summary Create customer
// @Tags customers
// @Accept json
// @Produce json
// @Param input body createCustomerReq true "Customer"
// @Success 201 {object} createCustomerResp
// @Failure 400 {object} errorResp
// @Failure 409 {object} errorResp
// @Router /customers [post]
func (s *Server) createCustomer(c *gin.Context) {
	var req createCustomerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	customer, msg, err := s.svc.Customers.Create(c, domain.CustomerInput(req))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, createCustomerResp{Customer: customer, Message: msg})
}

type bulkCreateCustomersReq struct {
	Customers []createCustomerReq `json:"customers"`
}

// @Summary Create customers in bulk
// @Description Items are processed in order; failed items are reported in errors and do not abort the batch.
// @Tags customers
// @Accept json
// @Produce json
// @Param input body bulkCreateCustomersReq true "Customers"
// @Success 200 {object} service.BulkResult
// @Failure 400 {object} errorResp
// @Router /customers/bulk [post]
func (s *Server) bulkCreateCustomers(c *gin.Context) {
	var req bulkCreateCustomersReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	inputs := make([]domain.CustomerInput, 0, len(req.Customers))
	for _, in := range req.Customers {
		inputs = append(inputs, domain.CustomerInput(in))
	}
	c.JSON(http.StatusOK, s.svc.Customers.BulkCreate(c, inputs))
}

// @Summary List customers
// @Tags customers
// @Produce json
// @Param order_by query string false "id, name or email; prefix with - for descending"
// @Success 200 {array} domain.Customer
// @Failure 400 {object} errorResp
// @Router /customers [get]
func (s *Server) listCustomers(c *gin.Context) {
	list, err := s.svc.Customers.List(c, c.Query("order_by"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Get customer by id
// @Tags customers
// @Produce json
// @Param id path int true "Customer ID"
// @Success 200 {object} domain.Customer
// @Failure 400 {object} errorResp
// @Failure 404 {object} errorResp
// @Router /customers/{id} [get]
func (s *Server) getCustomer(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	customer, err := s.svc.Customers.GetByID(c, id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// Product handlers
type createProductReq struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price" swaggertype:"number"`
	Stock int64           `json:"stock"`
}

// @Summary Create product
// @Tags products
// @Accept json
// @Produce json
// @Param input body createProductReq true "Product"
// @Success 201 {object} domain.Product
// @Failure 400 {object} errorResp
// @Router /products [post]
func (s *Server) createProduct(c *gin.Context) {
	var req createProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	p, err := s.svc.Products.Create(c, domain.Product{Name: req.Name, Price: req.Price, Stock: req.Stock})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// @Summary Get product by id
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} domain.Product
// @Failure 400 {object} errorResp
// @Failure 404 {object} errorResp
// @Router /products/{id} [get]
func (s *Server) getProduct(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	p, err := s.svc.Products.GetByID(c, id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary List products
// @Tags products
// @Produce json
// @Param q query string false "Name contains"
// @Param min_price query number false "Min price"
// @Param max_price query number false "Max price"
// @Param order_by query string false "id, name, price or stock; prefix with - for descending"
// @Success 200 {array} domain.Product
// @Failure 400 {object} errorResp
// @Router /products [get]
func (s *Server) listProducts(c *gin.Context) {
	q := service.ProductQuery{NameContains: c.Query("q"), OrderBy: c.Query("order_by")}
	if v := c.Query("min_price"); v != "" {
		if x, err := decimal.NewFromString(v); err == nil {
			q.MinPrice = &x
		}
	}
	if v := c.Query("max_price"); v != "" {
		if x, err := decimal.NewFromString(v); err == nil {
			q.MaxPrice = &x
		}
	}
	list, err := s.svc.Products.List(c, q)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Restock low stock products
// @Description Every product with stock below 10 gets 10 more units.
// @Tags products
// @Produce json
// @Success 200 {object} service.RestockResult
// @Router /products/restock [post]
func (s *Server) restockProducts(c *gin.Context) {
	res, err := s.svc.Products.UpdateLowStock(c)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Order handlers
type createOrderReq struct {
	CustomerID int64      `json:"customer_id"`
	ProductIDs []int64    `json:"product_ids"`
	OrderDate  *time.Time `json:"order_date"`
}

// @Summary Create order
// @Tags orders
// @Accept json
// @Produce json
// @Param input body createOrderReq true "Order"
// @Success 201 {object} domain.Order
// @Failure 400 {object} errorResp
// @Failure 404 {object} errorResp
// @Router /orders [post]
func (s *Server) createOrder(c *gin.Context) {
	var req createOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	o, err := s.svc.Orders.CreateOrder(c, req.CustomerID, req.ProductIDs, req.OrderDate)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

// @Summary Get order by id
// @Tags orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} domain.Order
// @Failure 400 {object} errorResp
// @Failure 404 {object} errorResp
// @Router /orders/{id} [get]
func (s *Server) getOrder(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	o, err := s.svc.Orders.GetOrder(c, id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// @Summary List orders
// @Tags orders
// @Produce json
// @Param customer_id query int false "Customer ID"
// @Param order_date_gte query string false "RFC3339 lower bound"
// @Param order_date_lte query string false "RFC3339 upper bound"
// @Param order_by query string false "id, orderDate or totalAmount; prefix with - for descending"
// @Success 200 {array} domain.Order
// @Failure 400 {object} errorResp
// @Router /orders [get]
func (s *Server) listOrders(c *gin.Context) {
	q := service.OrderQuery{OrderBy: c.Query("order_by")}
	if v := c.Query("customer_id"); v != "" {
		id, err := parseID(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer_id"})
			return
		}
		q.CustomerID = &id
	}
	for param, dst := range map[string]**time.Time{
		"order_date_gte": &q.OrderDateGte,
		"order_date_lte": &q.OrderDateLte,
	} {
		v := c.Query(param)
		if v == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + param})
			return
		}
		*dst = &t
	}
	list, err := s.svc.Orders.List(c, q)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Totals report
// @Tags reports
// @Produce json
// @Success 200 {object} domain.Totals
// @Router /reports/totals [get]
func (s *Server) totals(c *gin.Context) {
	t, err := s.svc.Reports.Totals(c)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func parseID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

func (s *Server) writeError(c *gin.Context, err error) {
	status := mapErrorToStatus(err)
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(status, errorResp{Error: "internal error"})
		return
	}
	c.JSON(status, errorResp{Error: err.Error()})
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
