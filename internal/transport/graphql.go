package transport

import (
	"errors"
	"net/http"
	"time"

	"product-catalog/internal/domain"
	"product-catalog/internal/repository"
	"product-catalog/internal/service"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/handler"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// graphQLError is a resolver error carrying a typed code in the
// extensions map, so clients can branch on it without parsing messages
type graphQLError struct {
	code        string
	message     string
	fieldErrors map[string]string
}

func (e *graphQLError) Error() string {
	return e.message
}

// Extensions implements gqlerrors.ExtendedError
func (e *graphQLError) Extensions() map[string]interface{} {
	ext := map[string]interface{}{"code": e.code}
	if len(e.fieldErrors) > 0 {
		ext["fieldErrors"] = e.fieldErrors
	}
	return ext
}

// asGraphQLError translates service errors into typed GraphQL errors.
// Unexpected failures surface with a generic message only.
func asGraphQLError(logger *zap.Logger, err error) error {
	var validationErr *service.ValidationError

	switch {
	case errors.As(err, &validationErr):
		return &graphQLError{code: "BAD_REQUEST", message: validationErr.Error(), fieldErrors: validationErr.FieldErrors}
	case errors.Is(err, service.ErrInvalidProductStatus),
		errors.Is(err, service.ErrProductAlreadyExists):
		return &graphQLError{code: "BAD_REQUEST", message: err.Error()}
	case errors.Is(err, repository.ErrProductNotFound):
		return &graphQLError{code: "NOT_FOUND", message: "Product not found"}
	default:
		logger.Error("Unhandled service error", zap.Error(err))
		return &graphQLError{code: "INTERNAL_ERROR", message: "Internal server error"}
	}
}

var productStatusEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "ProductStatus",
	Values: graphql.EnumValueConfigMap{
		"ACTIVE":  &graphql.EnumValueConfig{Value: domain.StatusActive},
		"BLOCKED": &graphql.EnumValueConfig{Value: domain.StatusBlocked},
		"DELETED": &graphql.EnumValueConfig{Value: domain.StatusDeleted},
	},
})

var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Product",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"name":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"description": &graphql.Field{Type: graphql.String},
		"price": &graphql.Field{
			Type:    graphql.NewNonNull(graphql.Float),
			Resolve: resolvePrice,
		},
		"stock":     &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"status":    &graphql.Field{Type: graphql.NewNonNull(productStatusEnum)},
		"createdAt": &graphql.Field{Type: graphql.DateTime},
		"updatedAt": &graphql.Field{
			Type:    graphql.DateTime,
			Resolve: resolveUpdatedAt,
		},
	},
})

var productInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "ProductInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":        &graphql.InputObjectFieldConfig{Type: graphql.String},
		"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
		"price":       &graphql.InputObjectFieldConfig{Type: graphql.Float},
		"stock":       &graphql.InputObjectFieldConfig{Type: graphql.Int},
		"status":      &graphql.InputObjectFieldConfig{Type: productStatusEnum},
	},
})

func resolvePrice(p graphql.ResolveParams) (interface{}, error) {
	switch source := p.Source.(type) {
	case service.ProductResponse:
		return source.Price.InexactFloat64(), nil
	case *service.ProductResponse:
		return source.Price.InexactFloat64(), nil
	}
	return nil, nil
}

func resolveUpdatedAt(p graphql.ResolveParams) (interface{}, error) {
	var updatedAt *time.Time
	switch source := p.Source.(type) {
	case service.ProductResponse:
		updatedAt = source.UpdatedAt
	case *service.ProductResponse:
		updatedAt = source.UpdatedAt
	}
	if updatedAt == nil {
		return nil, nil
	}
	return *updatedAt, nil
}

// inputToRequest maps a ProductInput argument onto the service DTO.
// Field-level constraints stay with the service, so all fields are
// optional at the schema level.
func inputToRequest(input map[string]interface{}) service.ProductRequest {
	var req service.ProductRequest
	if v, ok := input["name"].(string); ok {
		req.Name = v
	}
	if v, ok := input["description"].(string); ok {
		req.Description = v
	}
	if v, ok := input["price"].(float64); ok {
		price := decimal.NewFromFloat(v)
		req.Price = &price
	}
	if v, ok := input["stock"].(int); ok {
		req.Stock = &v
	}
	if v, ok := input["status"].(domain.ProductStatus); ok {
		req.Status = string(v)
	}
	return req
}

// NewGraphQLHandler builds the GraphQL schema over the product service
// and returns the HTTP handler serving it
func NewGraphQLHandler(productService service.ProductService, logger *zap.Logger) (http.Handler, error) {
	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"products": &graphql.Field{
				Type: graphql.NewList(productType),
				Args: graphql.FieldConfigArgument{
					"status": &graphql.ArgumentConfig{Type: graphql.NewNonNull(productStatusEnum)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					status := p.Args["status"].(domain.ProductStatus)
					products, err := productService.GetByStatus(p.Context, status)
					if err != nil {
						return nil, asGraphQLError(logger, err)
					}
					return products, nil
				},
			},
			"activeProducts": &graphql.Field{
				Type: graphql.NewList(productType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					products, err := productService.GetAllActive(p.Context)
					if err != nil {
						return nil, asGraphQLError(logger, err)
					}
					return products, nil
				},
			},
			"product": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					product, err := productService.GetByID(p.Context, int64(p.Args["id"].(int)))
					if err != nil {
						return nil, asGraphQLError(logger, err)
					}
					if product == nil {
						return nil, nil
					}
					return product, nil
				},
			},
			"searchProducts": &graphql.Field{
				Type: graphql.NewList(productType),
				Args: graphql.FieldConfigArgument{
					"name": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					products, err := productService.SearchByTerm(p.Context, p.Args["name"].(string))
					if err != nil {
						return nil, asGraphQLError(logger, err)
					}
					return products, nil
				},
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createProduct": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(productInputType)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					req := inputToRequest(p.Args["input"].(map[string]interface{}))
					product, err := productService.Create(p.Context, req)
					if err != nil {
						return nil, asGraphQLError(logger, err)
					}
					return product, nil
				},
			},
			"updateProduct": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(productInputType)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					req := inputToRequest(p.Args["input"].(map[string]interface{}))
					product, err := productService.Update(p.Context, int64(p.Args["id"].(int)), req)
					if err != nil {
						return nil, asGraphQLError(logger, err)
					}
					return product, nil
				},
			},
			"deleteProduct": &graphql.Field{
				Type: graphql.Boolean,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if err := productService.Delete(p.Context, int64(p.Args["id"].(int))); err != nil {
						return nil, asGraphQLError(logger, err)
					}
					return true, nil
				},
			},
		},
	})

	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
	if err != nil {
		return nil, err
	}

	return handler.New(&handler.Config{
		Schema:   &schema,
		Pretty:   true,
		GraphiQL: true,
	}), nil
}
