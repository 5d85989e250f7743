package email

import (
	"bytes"
	"html/template"
)

// DocumentEmail is the data behind quote and receipt emails.
type DocumentEmail struct {
	CompanyName  string
	CompanyPhone string
	CompanyEmail string
	ClientName   string
	Title        string
	Number       string
	Intro        string
	Rows         []Row
	Closing      string
}

// Row is a label/value line in the summary table.
type Row struct {
	Label string
	Value string
}

var documentTmpl = template.Must(template.New("document").Parse(documentTemplate))

// RenderDocument renders the HTML body for a quote or receipt email.
func RenderDocument(data DocumentEmail) (string, error) {
	var buf bytes.Buffer
	if err := documentTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

const documentTemplate = `<!DOCTYPE html>
<html lang="es">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}} {{.Number}}</title>
</head>
<body style="margin: 0; padding: 0; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f5f3ef;">
    <table role="presentation" style="width: 100%; border-collapse: collapse;">
        <tr>
            <td style="padding: 32px 0;">
                <table role="presentation" style="max-width: 600px; margin: 0 auto; background-color: #ffffff; border-radius: 10px; overflow: hidden;">
                    <tr>
                        <td style="background-color: #3e2f23; padding: 28px 30px; text-align: center;">
                            <h1 style="color: #ffffff; margin: 0; font-size: 24px;">{{.CompanyName}}</h1>
                        </td>
                    </tr>
                    <tr>
                        <td style="padding: 32px 30px;">
                            <h2 style="color: #3e2f23; margin: 0 0 16px 0; font-size: 20px;">{{.Title}} {{.Number}}</h2>
                            <p style="color: #4a4a4a; font-size: 15px; line-height: 1.6;">Estimado(a) {{.ClientName}},</p>
                            <p style="color: #4a4a4a; font-size: 15px; line-height: 1.6;">{{.Intro}}</p>
                            <table role="presentation" style="width: 100%; border-collapse: collapse; margin: 20px 0;">
                                {{range .Rows}}
                                <tr>
                                    <td style="padding: 8px 0; color: #777777; font-size: 14px; border-bottom: 1px solid #eeeeee;">{{.Label}}</td>
                                    <td style="padding: 8px 0; color: #3e2f23; font-size: 14px; font-weight: 600; text-align: right; border-bottom: 1px solid #eeeeee;">{{.Value}}</td>
                                </tr>
                                {{end}}
                            </table>
                            <p style="color: #4a4a4a; font-size: 15px; line-height: 1.6;">{{.Closing}}</p>
                        </td>
                    </tr>
                    <tr>
                        <td style="background-color: #faf8f5; padding: 20px 30px; text-align: center; border-top: 1px solid #eeeeee;">
                            <p style="color: #999999; font-size: 13px; margin: 0;">{{.CompanyName}}{{if .CompanyPhone}} · {{.CompanyPhone}}{{end}}{{if .CompanyEmail}} · {{.CompanyEmail}}{{end}}</p>
                        </td>
                    </tr>
                </table>
            </td>
        </tr>
    </table>
</body>
</html>
`
