package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"
	"os/exec"
	"strings"

	"github.com/alecthomas/repr"
	"github.com/urfave/cli/v2"
	"github.com/ztrue/tracerr"
	"gopkg.in/yaml.v2"

	"github.com/pontaoski/haumeago/lexer"
)

func parseFile(path string) (AST, error) {
	handle, err := os.Open(path)
	if err != nil {
		return AST{}, err
	}
	defer handle.Close()

	l := lexer.NewLexer(handle, path)
	p := NewParser(l)
	if err := p.Parse(); err != nil {
		return AST{}, err
	}

	return p.ast, nil
}

func parseDirectory(dir string) []Function {
	var t []Function

	fis, err := ioutil.ReadDir(dir)
	if err != nil {
		tracerr.PrintSourceColor(err)
		os.Exit(1)
	}

	for _, fi := range fis {
		if strings.HasSuffix(fi.Name(), ".hau") {
			ast, err := parseFile(fi.Name())
			if err != nil {
				tracerr.PrintSourceColor(err)
				os.Exit(1)
			}

			t = append(t, ast.Functions...)
		}
	}

	return t
}

type haumeaModule struct {
	Package string `yaml:"Package"`
}

func main() {
	app := &cli.App{
		Name:  "haumeago",
		Usage: "haumea compiler",
		ExitErrHandler: func(context *cli.Context, err error) {
			log.Fatal("error with haumeago: %w", err)
		},
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "init a directory",
				Action: func(c *cli.Context) error {
					name := c.Args().First()
					if name == "" {
						fmt.Printf("no module name provided")
						os.Exit(1)
					}
					yml := haumeaModule{
						Package: name,
					}
					fi, err := os.Create("Haumea Module Information")
					if err != nil {
						fmt.Printf("error creating Haumea Module Information: %s", err)
						os.Exit(1)
					}
					defer fi.Close()

					out, err := yaml.Marshal(yml)
					if err != nil {
						fmt.Printf("error creating Haumea Module Information: %s", err)
						os.Exit(1)
					}

					_, err = fi.Write(out)
					if err != nil {
						fmt.Printf("error creating Haumea Module Information: %s", err)
						os.Exit(1)
					}

					return nil
				},
			},
			{
				Name:  "ast",
				Usage: "dump the syntax tree of a file",
				Action: func(c *cli.Context) error {
					file := c.Args().First()
					if file == "" {
						fmt.Printf("no file provided")
						os.Exit(1)
					}
					ast, err := parseFile(file)
					if err != nil {
						tracerr.PrintSourceColor(err)
						os.Exit(1)
					}
					repr.Println(ast)
					return nil
				},
			},
			{
				Name:  "typeinfo",
				Usage: "dump typeinfo from a compiled library",
				Action: func(c *cli.Context) error {
					file := c.Args().Get(0)
					data, err := getTypeInfoFromFile(file)
					if err != nil {
						return err
					}
					repr.Println(data)
					return nil
				},
			},
			{
				Name:  "build",
				Usage: "build a file, or every .hau file in the directory",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name: "output",
					},
					&cli.StringFlag{
						Name:  "emit-c",
						Usage: "write the generated C to this path and stop",
					},
					&cli.BoolFlag{
						Name:  "dump",
						Value: false,
					},
					&cli.BoolFlag{
						Name:  "library",
						Value: false,
					},
					&cli.StringFlag{
						Name:  "cc",
						Value: "cc",
					},
				},
				Action: func(c *cli.Context) error {
					out := c.String("output")

					data, err := ioutil.ReadFile("Haumea Module Information")
					if err != nil {
						fmt.Printf("error reading Haumea Module Information: %s", err)
						os.Exit(1)
					}

					var doc haumeaModule
					err = yaml.Unmarshal(data, &doc)
					if err != nil {
						fmt.Printf("error reading Haumea Module Information: %s", err)
						os.Exit(1)
					}
					if out == "" {
						out = doc.Package
					}
					if c.Bool("library") {
						out += ".Dynamically Linked Haumea Module"
					}

					var functions []Function
					if file := c.Args().First(); file != "" {
						ast, err := parseFile(file)
						if err != nil {
							tracerr.PrintSourceColor(err)
							os.Exit(1)
						}
						functions = ast.Functions
					} else {
						functions = parseDirectory("./")
					}

					module, err := codegen(
						AST{Functions: functions},
						settings{
							isLibrary:   c.Bool("library"),
							packageName: doc.Package,
						},
					)
					if err != nil {
						tracerr.PrintSourceColor(err)
						os.Exit(1)
					}

					if c.Bool("dump") {
						println(module)
						os.Exit(0)
					}

					if path := c.String("emit-c"); path != "" {
						return ioutil.WriteFile(path, []byte(module), 0644)
					}

					fi, err := ioutil.TempFile("/tmp", "*.c")
					if err != nil {
						return err
					}
					defer fi.Close()
					_, err = io.Copy(fi, strings.NewReader(module))
					if err != nil {
						return err
					}

					cmd := exec.Command(c.String("cc"), "-o", out)

					if c.Bool("library") {
						cmd.Args = append(cmd.Args, "-shared", "-fPIC")
					}

					cmd.Args = append(cmd.Args, fi.Name())

					cmd.Stdout = os.Stdout
					cmd.Stderr = os.Stderr

					err = cmd.Run()
					if err != nil {
						tracerr.PrintSourceColor(err)
						os.Exit(1)
					}

					return nil
				},
			},
		},
	}
	app.Run(os.Args)
}
