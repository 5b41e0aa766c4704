// Package graphql defines the storefront's catalogue query schema,
// served on POST /api/graphql as a read-only alternative to the REST
// catalogue endpoints.
package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/favourfurniture/storefront/app/models"
	"github.com/favourfurniture/storefront/app/services"
)

var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Product",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.Int},
		"name":        &graphql.Field{Type: graphql.String},
		"type":        &graphql.Field{Type: graphql.String},
		"description": &graphql.Field{Type: graphql.String},
		// Minor currency units.
		"price": &graphql.Field{Type: graphql.Int},
		"image": &graphql.Field{Type: graphql.String},
		"likes": &graphql.Field{Type: graphql.Int},
	},
})

// NewRootQuery builds the catalogue root query backed by the product
// service.
func NewRootQuery(products *services.ProductService) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"product": &graphql.Field{
				Type:        productType,
				Description: "A single product by id.",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(int)
					product, err := products.Get(uint(id))
					if err != nil {
						return nil, err
					}
					return productView(product), nil
				},
			},
			"products": &graphql.Field{
				Type:        graphql.NewList(productType),
				Description: "Products, newest first, optionally filtered by furniture category.",
				Args: graphql.FieldConfigArgument{
					"category": &graphql.ArgumentConfig{Type: graphql.String},
					"page":     &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: services.DefaultPage},
					"pageSize": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: services.DefaultPageSize},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					category, _ := p.Args["category"].(string)
					page, _ := p.Args["page"].(int)
					pageSize, _ := p.Args["pageSize"].(int)

					list, _, err := products.List(category, page, pageSize)
					if err != nil {
						return nil, err
					}

					views := make([]map[string]interface{}, len(list))
					for i, product := range list {
						views[i] = productView(product)
					}
					return views, nil
				},
			},
			"categories": &graphql.Field{
				Type:        graphql.NewList(graphql.String),
				Description: "All furniture categories.",
				Resolve: func(graphql.ResolveParams) (interface{}, error) {
					return models.ProductTypes, nil
				},
			},
		},
	})
}

func productView(p models.Product) map[string]interface{} {
	return map[string]interface{}{
		"id":          int(p.ID),
		"name":        p.Name,
		"type":        p.Type,
		"description": p.Description,
		"price":       int(p.Price),
		"image":       p.Image,
		"likes":       p.Likes,
	}
}
