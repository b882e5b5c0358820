// Package templates provides email content builders
package templates

import (
	"bytes"
	"html/template"
	"log"
)

type WelcomeEmailProps struct {
	Name       string
	CatalogURL string
}

var welcomeEmailTemplate = template.Must(template.New("welcomeEmail").Parse(`
<p style="font-family: Helvetica, sans-serif; font-size: 16px; font-weight: normal; margin: 0; margin-bottom: 16px;">¡Hola {{.Name}}!</p>
<p style="font-family: Helvetica, sans-serif; font-size: 16px; font-weight: normal; margin: 0; margin-bottom: 16px;">Tu cuenta de ShineScript está lista. Ya puedes explorar nuestro catálogo de bootcamps y encontrar el programa perfecto para impulsar tu carrera tech.</p>
<table role="presentation" border="0" cellpadding="0" cellspacing="0" class="btn btn-primary" style="border-collapse: separate; mso-table-lspace: 0pt; mso-table-rspace: 0pt; box-sizing: border-box; width: 100%; min-width: 100%;" width="100%">
  <tbody>
    <tr>
      <td align="left" style="font-family: Helvetica, sans-serif; font-size: 16px; vertical-align: top; padding-bottom: 16px;" valign="top">
        <table role="presentation" border="0" cellpadding="0" cellspacing="0" style="border-collapse: separate; mso-table-lspace: 0pt; mso-table-rspace: 0pt; width: auto;">
          <tbody>
            <tr>
              <td style="font-family: Helvetica, sans-serif; font-size: 16px; vertical-align: top; border-radius: 4px; text-align: center; background-color: #0867ec;" valign="top" align="center" bgcolor="#0867ec">
                <a href="{{.CatalogURL}}" target="_blank" style="border: solid 2px #0867ec; border-radius: 4px; box-sizing: border-box; cursor: pointer; display: inline-block; font-size: 16px; font-weight: bold; margin: 0; padding: 12px 24px; text-decoration: none; background-color: #0867ec; border-color: #0867ec; color: #ffffff;">Ver bootcamps</a>
              </td>
            </tr>
          </tbody>
        </table>
      </td>
    </tr>
  </tbody>
</table>
<p style="font-family: Helvetica, sans-serif; font-size: 16px; font-weight: normal; margin: 0; margin-bottom: 16px;">Si no creaste esta cuenta, puedes ignorar este mensaje.</p>`))

// GetWelcomeEmailContent renders the welcome email body for a new account.
func GetWelcomeEmailContent(props WelcomeEmailProps) string {
	if props.Name == "" {
		props.Name = "developer"
	}
	if props.CatalogURL == "" {
		props.CatalogURL = "https://shinescript.dev/cursos"
	}

	var buf bytes.Buffer
	if err := welcomeEmailTemplate.Execute(&buf, props); err != nil {
		log.Printf("Failed to render welcome email: %v", err)
		return ""
	}
	return buf.String()
}
