package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/SantiPratti/FerrariMenudencias-Backend/internal/models"
)

// Buscar ejecuta un multi_match con fuzziness sobre el nombre del producto
// y devuelve el total de coincidencias más la página pedida.
func Buscar(ctx context.Context, es *elasticsearch.Client, index, query string, from, size int) (int64, []models.Producto, error) {
	body := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     query,
				"fields":    []string{"nombre^2"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("búsqueda: %w", err)
	}

	res, err := es.Search(
		es.Search.WithContext(ctx),
		es.Search.WithIndex(index),
		es.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("búsqueda: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return 0, nil, fmt.Errorf("búsqueda: respuesta %s de Elasticsearch", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct{ Value int64 }               `json:"total"`
			Hits  []struct {
				Source models.Producto `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, err
	}

	productos := make([]models.Producto, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		productos[i] = hit.Source
	}
	return r.Hits.Total.Value, productos, nil
}
