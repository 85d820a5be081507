package catalog

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogFS embed.FS

// Service — продаваемый сервис с набором планов
type Service struct {
	Name  string `yaml:"name"`
	Plans []Plan `yaml:"plans"`
}

type Plan struct {
	Name      string   `yaml:"name"`
	Durations []string `yaml:"durations"`
}

type catalogFile struct {
	Services []Service `yaml:"services"`
}

// Catalog — каталог сервисов, по которому витрина валидирует заявки
type Catalog struct {
	services map[string]Service
}

func New() (*Catalog, error) {
	data, err := catalogFS.ReadFile("catalog.yaml")
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	c := &Catalog{services: make(map[string]Service, len(file.Services))}
	for _, svc := range file.Services {
		c.services[strings.ToLower(svc.Name)] = svc
	}

	return c, nil
}

// HasPlan проверяет что сервис и план существуют в каталоге
func (c *Catalog) HasPlan(service, plan string) bool {
	svc, ok := c.services[strings.ToLower(service)]
	if !ok {
		return false
	}
	for _, p := range svc.Plans {
		if strings.EqualFold(p.Name, plan) {
			return true
		}
	}
	return false
}

// Services возвращает все сервисы каталога
func (c *Catalog) Services() []Service {
	result := make([]Service, 0, len(c.services))
	for _, svc := range c.services {
		result = append(result, svc)
	}
	return result
}
