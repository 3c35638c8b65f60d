package notification

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"
)

// categoryDetail es una categoría de la venta con su nombre ya resuelto.
type categoryDetail struct {
	Name     string
	Discount string
}

type templateData struct {
	SaleName   string
	StartDate  string
	EndDate    string
	Categories string
}

// Plantillas HTML de las notificaciones. La de vendedores invita a sumar
// productos a la venta; la de compradores anuncia los descuentos.
var (
	sellerTemplate = template.Must(template.New("seller").Parse(`
<div style="font-family: Arial, sans-serif; color: #333;">
  <h2>Nueva venta: {{.SaleName}}</h2>
  <p>¡Tenemos una nueva venta en la plataforma!</p>
  <p><strong>Inicio:</strong> {{.StartDate}}</p>
  <p><strong>Fin:</strong> {{.EndDate}}</p>
  <p><strong>Categorías incluidas:</strong> {{.Categories}}</p>
  <p>Agrega tus productos a la venta para aumentar tu visibilidad y tus ventas.</p>
  <p>Entra a la plataforma para administrar tus productos y participar.</p>
  <p>Saludos,<br/>Equipo de la plataforma</p>
</div>`))

	buyerTemplate = template.Must(template.New("buyer").Parse(`
<div style="font-family: Arial, sans-serif; color: #333;">
  <h2>Gran venta: {{.SaleName}}</h2>
  <p>¡Estamos emocionados de anunciar una nueva venta en la plataforma!</p>
  <p><strong>Inicio:</strong> {{.StartDate}}</p>
  <p><strong>Fin:</strong> {{.EndDate}}</p>
  <p><strong>Categorías incluidas:</strong> {{.Categories}}</p>
  <p>No te pierdas los descuentos. Visita la plataforma y aprovecha las ofertas.</p>
  <p>Saludos,<br/>Equipo de la plataforma</p>
</div>`))
)

func renderTemplate(tpl *template.Template, saleName string, start, end time.Time, cats []categoryDetail) (string, error) {
	parts := make([]string, 0, len(cats))
	for _, c := range cats {
		parts = append(parts, fmt.Sprintf("%s (descuento: %s%%)", c.Name, c.Discount))
	}
	data := templateData{
		SaleName:   saleName,
		StartDate:  start.Format("Monday, January 2, 2006 3:04 PM"),
		EndDate:    end.Format("Monday, January 2, 2006 3:04 PM"),
		Categories: strings.Join(parts, ", "),
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render plantilla: %w", err)
	}
	return buf.String(), nil
}
